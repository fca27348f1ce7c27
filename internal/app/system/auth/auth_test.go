package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "clubhub-test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// fakeFetcher maps ids to users; absent ids resolve to nil.
type fakeFetcher struct {
	users map[string]*SessionUser
}

func (f *fakeFetcher) FetchUser(_ context.Context, id string) *SessionUser {
	return f.users[id]
}

// signInCookie performs a SignIn and returns the resulting cookies.
func signInCookie(t *testing.T, sm *SessionManager, u *SessionUser) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return rec.Result().Cookies()
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "name", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	sm := newTestManager(t)

	var seen bool
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			t.Error("unexpected user in context")
		}
		seen = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if !seen {
		t.Fatal("next handler not called")
	}
}

func TestLoadSessionUser_RefetchesUser(t *testing.T) {
	sm := newTestManager(t)
	fetcher := &fakeFetcher{users: map[string]*SessionUser{
		"m1": {ID: "m1", Username: "jo", Role: "member"},
	}}
	sm.SetUserFetcher(fetcher)

	cookies := signInCookie(t, sm, &SessionUser{ID: "m1", Username: "jo", Role: "member"})

	// The cookie's cached role is stale; the fetcher's answer wins.
	fetcher.users["m1"].Role = "leader"

	var got *SessionUser
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.Role != "leader" {
		t.Errorf("role: got %q, want %q", got.Role, "leader")
	}
}

func TestLoadSessionUser_DropsRevokedUser(t *testing.T) {
	sm := newTestManager(t)
	sm.SetUserFetcher(&fakeFetcher{users: map[string]*SessionUser{}})

	cookies := signInCookie(t, sm, &SessionUser{ID: "gone", Username: "ghost", Role: "member"})

	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			t.Error("revoked user still in context")
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// The middleware must also expire the cookie.
	expired := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "clubhub-test-session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected session cookie to be expired")
	}
}

func TestRequireSignedIn(t *testing.T) {
	sm := newTestManager(t)
	h := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	req := WithTestUser(httptest.NewRequest("GET", "/", nil), &SessionUser{ID: "m1", Role: "member"})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("signed in: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestManager(t)
	h := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name string
		user *SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"wrong role", &SessionUser{ID: "m1", Role: "member"}, http.StatusForbidden},
		{"admin", &SessionUser{ID: "a1", Role: "admin"}, http.StatusNoContent},
		{"admin mixed case", &SessionUser{ID: "a1", Role: "Admin"}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.user != nil {
				req = WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

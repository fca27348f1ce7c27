// internal/app/session/manager_test.go
package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/blob"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

type harness struct {
	dir    *memberstore.Store
	mgr    *Manager
	mem    *blob.Memory
	writer *blob.Writer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mem := blob.NewMemory()
	writer := blob.NewWriter(mem, zap.NewNop())
	t.Cleanup(writer.Close)

	dir := memberstore.New(mem, writer, zap.NewNop())
	mgr := NewManager(dir, mem, writer, zap.NewNop())
	mgr.Load(context.Background())
	return &harness{dir: dir, mgr: mgr, mem: mem, writer: writer}
}

func (h *harness) register(t *testing.T, username, password string) models.Member {
	t.Helper()
	m, err := h.dir.Register(memberstore.RegisterInput{
		Name:     username,
		Username: username,
		Email:    username + "@example.edu",
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return m
}

func (h *harness) approved(t *testing.T, username, password string) models.Member {
	t.Helper()
	m := h.register(t, username, password)
	h.dir.Approve(m.ID, memberstore.ApproveOverrides{})
	got, _ := h.dir.ByID(m.ID)
	return got
}

func TestLogin_MissingCredentials(t *testing.T) {
	h := newHarness(t)
	cases := []struct{ user, pass string }{
		{"", ""},
		{"jo", ""},
		{"", "secret1"},
		{"   ", "  "},
	}
	for _, c := range cases {
		if _, err := h.mgr.Login(context.Background(), c.user, c.pass); err != ErrMissingCredentials {
			t.Errorf("Login(%q, %q) err = %v, want ErrMissingCredentials", c.user, c.pass, err)
		}
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	h := newHarness(t)
	if _, err := h.mgr.Login(context.Background(), "nobody", "pw"); err != ErrUnknownAccount {
		t.Fatalf("err = %v, want ErrUnknownAccount", err)
	}
}

func TestLogin_StatusCheckedBeforePassword(t *testing.T) {
	h := newHarness(t)
	m := h.register(t, "pat", "secret1")

	// Pending account: the wrong password must still report approval state.
	if _, err := h.mgr.Login(context.Background(), "pat", "wrong"); err != ErrAwaitingApproval {
		t.Fatalf("pending err = %v, want ErrAwaitingApproval", err)
	}

	h.dir.Reject(m.ID)
	if _, err := h.mgr.Login(context.Background(), "pat", "wrong"); err != ErrRejected {
		t.Fatalf("rejected err = %v, want ErrRejected", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)
	h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "nope"); err != ErrBadCredentials {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
	if h.mgr.Current() != nil {
		t.Fatal("failed login must not establish a session")
	}
}

func TestLogin_Success(t *testing.T) {
	h := newHarness(t)
	want := h.approved(t, "jo", "secret1")

	sess, err := h.mgr.Login(context.Background(), "  Jo ", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.ID != want.ID || sess.Username != "jo" || sess.Role != models.RoleMember {
		t.Fatalf("session = %+v", sess)
	}

	cur := h.mgr.Current()
	if cur == nil || cur.ID != want.ID {
		t.Fatalf("Current() = %+v", cur)
	}
}

func TestLogin_Persists(t *testing.T) {
	h := newHarness(t)
	want := h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	h.writer.Flush()

	raw, ok, err := h.mem.Get(context.Background(), blob.SessionKey)
	if err != nil || !ok {
		t.Fatalf("Get session blob: ok=%v err=%v", ok, err)
	}
	var stored models.Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stored.ID != want.ID || stored.Username != "jo" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	h.mgr.Logout(context.Background())
	if h.mgr.Current() != nil {
		t.Fatal("Current() after logout should be nil")
	}
	h.writer.Flush()
	if _, ok, _ := h.mem.Get(context.Background(), blob.SessionKey); ok {
		t.Fatal("session blob should be removed after logout")
	}

	// Logging out while anonymous is a no-op.
	h.mgr.Logout(context.Background())
}

func TestLoad_RestoresValidSession(t *testing.T) {
	h := newHarness(t)
	want := h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	h.writer.Flush()

	// Second process over the same storage.
	writer2 := blob.NewWriter(h.mem, zap.NewNop())
	defer writer2.Close()
	dir2 := memberstore.New(h.mem, writer2, zap.NewNop())
	dir2.Load(context.Background())
	mgr2 := NewManager(dir2, h.mem, writer2, zap.NewNop())
	mgr2.Load(context.Background())

	cur := mgr2.Current()
	if cur == nil || cur.ID != want.ID || cur.Username != "jo" {
		t.Fatalf("restored session = %+v", cur)
	}
}

func TestLoad_DiscardsStaleSession(t *testing.T) {
	h := newHarness(t)
	m := h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	h.writer.Flush()

	// The member was rejected after the session was persisted.
	writer2 := blob.NewWriter(h.mem, zap.NewNop())
	defer writer2.Close()
	dir2 := memberstore.New(h.mem, writer2, zap.NewNop())
	dir2.Load(context.Background())
	dir2.Reject(m.ID)

	mgr2 := NewManager(dir2, h.mem, writer2, zap.NewNop())
	mgr2.Load(context.Background())
	if mgr2.Current() != nil {
		t.Fatal("rejected member must not restore a session")
	}
}

func TestLoad_CorruptBlobStartsAnonymous(t *testing.T) {
	mem := blob.NewMemory()
	if err := mem.Set(context.Background(), blob.SessionKey, "{nope"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	writer := blob.NewWriter(mem, zap.NewNop())
	defer writer.Close()
	dir := memberstore.New(mem, writer, zap.NewNop())
	mgr := NewManager(dir, mem, writer, zap.NewNop())
	mgr.Load(context.Background())
	if mgr.Current() != nil {
		t.Fatal("corrupt blob should yield anonymous")
	}
}

func TestRefresh_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	a := h.mgr.Refresh(context.Background())
	b := h.mgr.Refresh(context.Background())
	if a == nil || b == nil || *a != *b {
		t.Fatalf("Refresh not idempotent: %+v vs %+v", a, b)
	}
}

func TestRefresh_Anonymous(t *testing.T) {
	h := newHarness(t)
	if h.mgr.Refresh(context.Background()) != nil {
		t.Fatal("Refresh without a session should return nil")
	}
}

func TestDirectoryChange_RefreshesRole(t *testing.T) {
	h := newHarness(t)
	m := h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := h.dir.AssignRole(m.ID, models.RoleLeader); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}

	cur := h.mgr.Current()
	if cur == nil || cur.Role != models.RoleLeader {
		t.Fatalf("session after role change = %+v, want leader", cur)
	}
}

func TestDirectoryChange_ForcesLogoutOnReject(t *testing.T) {
	h := newHarness(t)
	m := h.approved(t, "jo", "secret1")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	h.dir.Reject(m.ID)

	if h.mgr.Current() != nil {
		t.Fatal("rejecting the signed-in member must end the session")
	}
	h.writer.Flush()
	if _, ok, _ := h.mem.Get(context.Background(), blob.SessionKey); ok {
		t.Fatal("session blob should be removed after forced logout")
	}
}

func TestDirectoryChange_UnrelatedMemberKeepsSession(t *testing.T) {
	h := newHarness(t)
	h.approved(t, "jo", "secret1")
	other := h.register(t, "sam", "pw12345")
	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	h.dir.Reject(other.ID)

	cur := h.mgr.Current()
	if cur == nil || cur.Username != "jo" {
		t.Fatalf("unrelated rejection changed session: %+v", cur)
	}
}

// End-to-end: signup, admin approval, then login with the same
// credentials yields a session for the approved member.
func TestSignupApprovalLoginFlow(t *testing.T) {
	h := newHarness(t)

	m, err := h.dir.Register(memberstore.RegisterInput{
		Name:     "Jo",
		Username: "jo",
		Email:    "jo@example.edu",
		Password: "secret1",
		ClubID:   "1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := h.mgr.Login(context.Background(), "jo", "secret1"); err != ErrAwaitingApproval {
		t.Fatalf("pre-approval err = %v, want ErrAwaitingApproval", err)
	}

	h.dir.Approve(m.ID, memberstore.ApproveOverrides{})

	sess, err := h.mgr.Login(context.Background(), "jo", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.ID != m.ID || sess.Username != "jo" || sess.Role != models.RoleMember {
		t.Fatalf("session = %+v", sess)
	}

	got, _ := h.dir.ByID(m.ID)
	if got.ClubID != "1" {
		t.Fatalf("clubId = %q, want requested club copied on approval", got.ClubID)
	}
}

// internal/app/features/login/handler.go
package login

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/session"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions   *session.Manager
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(sessions *session.Manager, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions:   sessions,
		SessionMgr: sessionMgr,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeLogin handles POST /login.
//
// On success: 200, a signed session cookie, and the session projection
//
//	{ "id":"…", "username":"jo", "role":"member" }
//
// On failure: 401 and { "error":"…" } with the user-facing message.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.Username); !allowed {
		h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	sess, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if session.IsAuthError(err) {
			httpjson.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:       sess.ID,
		Username: sess.Username,
		Role:     string(sess.Role),
	}); err != nil {
		h.Log.Error("session cookie write failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.Limiter.ResetUsername(sess.Username)
	h.Log.Info("user logged in", zap.String("username", sess.Username))
	httpjson.Write(w, http.StatusOK, sess)
}

// ServeSession handles GET /session: the current signed-in projection,
// re-validated on this request, or { "isAuthenticated": false }.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Write(w, http.StatusOK, map[string]any{"isAuthenticated": false})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"id":              user.ID,
		"username":        user.Username,
		"role":            user.Role,
	})
}

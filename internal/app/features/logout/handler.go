// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/session"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions   *session.Manager
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessions *session.Manager, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, SessionMgr: sessionMgr, Log: logger}
}

// Serve handles POST /logout. Always responds 204: logging out while
// anonymous succeeds.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session cookie clear failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// internal/app/features/members/handler.go
package members

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/features/shared/views"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the admin moderation surface over the membership
// directory.
type Handler struct {
	Directory *memberstore.Store
	Log       *zap.Logger
}

func NewHandler(directory *memberstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Directory: directory, Log: logger}
}

// ServeList handles GET /members.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, views.NewMemberViews(h.Directory.Members()))
}

// ServePending handles GET /members/pending.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, views.NewMemberViews(h.Directory.Pending()))
}

// ServeApproved handles GET /members/approved.
func (h *Handler) ServeApproved(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, views.NewMemberViews(h.Directory.Approved()))
}

type approveRequest struct {
	Role   string  `json:"role"`
	ClubID *string `json:"clubId"`
}

// ServeApprove handles POST /members/{id}/approve. Optional overrides
// win over what the member requested at signup. Approving an unknown id
// still returns 204: the operation is a no-op, not an error.
func (h *Handler) ServeApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req approveRequest
	if r.ContentLength > 0 && !httpjson.Decode(w, r, &req) {
		return
	}

	ov := memberstore.ApproveOverrides{ClubID: req.ClubID}
	if req.Role != "" {
		role, ok := models.ParseRole(req.Role)
		if !ok {
			httpjson.Error(w, http.StatusUnprocessableEntity, "unknown role")
			return
		}
		ov.Role = role
	}

	if err := h.Directory.Approve(id, ov); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.Log.Info("member approved", zap.String("member_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ServeReject handles POST /members/{id}/reject.
func (h *Handler) ServeReject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Directory.Reject(id); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.Log.Info("member rejected", zap.String("member_id", id))
	w.WriteHeader(http.StatusNoContent)
}

type roleRequest struct {
	Role string `json:"role"`
}

// ServeAssignRole handles PUT /members/{id}/role.
func (h *Handler) ServeAssignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req roleRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		httpjson.Error(w, http.StatusUnprocessableEntity, "unknown role")
		return
	}

	if err := h.Directory.AssignRole(id, role); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.Log.Info("member role assigned",
		zap.String("member_id", id), zap.String("role", string(role)))
	w.WriteHeader(http.StatusNoContent)
}

type passwordRequest struct {
	Password string `json:"password"`
}

// ServeResetPassword handles PUT /members/{id}/password.
func (h *Handler) ServeResetPassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req passwordRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if err := h.Directory.ResetPassword(id, req.Password); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.Log.Info("member password reset", zap.String("member_id", id))
	w.WriteHeader(http.StatusNoContent)
}

type updateRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	ClubID   *string `json:"clubId"`
}

// ServeUpdate handles PATCH /members/{id}: a shallow merge of the set
// fields. Passwords only change through the dedicated reset endpoint.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	upd := memberstore.MemberUpdate{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		ClubID:   req.ClubID,
	}
	if req.Role != nil {
		role, ok := models.ParseRole(*req.Role)
		if !ok {
			httpjson.Error(w, http.StatusUnprocessableEntity, "unknown role")
			return
		}
		upd.Role = &role
	}
	if req.Status != nil {
		status, ok := models.ParseStatus(*req.Status)
		if !ok {
			httpjson.Error(w, http.StatusUnprocessableEntity, "unknown status")
			return
		}
		upd.Status = &status
	}

	if err := h.Directory.Update(id, upd); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	member, ok := h.Directory.ByID(id)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "member not found")
		return
	}
	httpjson.Write(w, http.StatusOK, views.NewMemberView(member))
}

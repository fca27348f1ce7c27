// internal/app/features/signup/handler.go
package signup

import (
	"errors"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/features/shared/views"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Directory *memberstore.Store
	Log       *zap.Logger
}

func NewHandler(directory *memberstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Directory: directory, Log: logger}
}

type signupRequest struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ClubID        string `json:"clubId"`
	RequestedRole string `json:"requestedRole"`
}

// Serve handles POST /signup. New accounts always start pending, role
// member; a requested role or club is recorded for the moderator.
//
// 201 with the member view on success, 422 on validation failures,
// 409 on duplicate username or email.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	requestedRole := models.Role("")
	if req.RequestedRole != "" {
		role, ok := models.ParseRole(req.RequestedRole)
		if !ok {
			httpjson.Error(w, http.StatusUnprocessableEntity, "unknown role")
			return
		}
		requestedRole = role
	}

	member, err := h.Directory.Register(memberstore.RegisterInput{
		Name:          req.Name,
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		ClubID:        req.ClubID,
		RequestedRole: requestedRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, memberstore.ErrDuplicateUsername),
			errors.Is(err, memberstore.ErrDuplicateEmail):
			httpjson.Error(w, http.StatusConflict, err.Error())
		case memberstore.IsValidation(err):
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.Log.Error("signup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	h.Log.Info("member registered",
		zap.String("member_id", member.ID),
		zap.String("username", member.Username))
	httpjson.Write(w, http.StatusCreated, views.NewMemberView(member))
}

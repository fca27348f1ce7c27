// internal/app/features/shared/views/member.go
package views

import (
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

// MemberView is the wire shape for a directory member. The password
// hash never leaves the service.
type MemberView struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Username        string        `json:"username"`
	Email           string        `json:"email"`
	Role            models.Role   `json:"role"`
	Status          models.Status `json:"status"`
	ClubID          string        `json:"clubId,omitempty"`
	RequestedClubID string        `json:"requestedClubId,omitempty"`
	RequestedRole   models.Role   `json:"requestedRole,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func NewMemberView(m models.Member) MemberView {
	return MemberView{
		ID:              m.ID,
		Name:            m.Name,
		Username:        m.Username,
		Email:           m.Email,
		Role:            m.Role,
		Status:          m.Status,
		ClubID:          m.ClubID,
		RequestedClubID: m.RequestedClubID,
		RequestedRole:   m.RequestedRole,
		CreatedAt:       m.CreatedAt,
	}
}

// NewMemberViews maps a member list preserving order.
func NewMemberViews(ms []models.Member) []MemberView {
	out := make([]MemberView, len(ms))
	for i, m := range ms {
		out[i] = NewMemberView(m)
	}
	return out
}

// internal/domain/models/member.go
package models

import "time"

// Member represents a person with an account: admins, leaders, and
// members, including those still awaiting approval.
//
// Username and Email are stored trimmed and lower-cased; both are unique
// across the directory (case-insensitive). Members are never deleted.
type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
	Status       Status `json:"status"`

	// ClubID is set on approval; empty means no club assignment.
	ClubID string `json:"clubId,omitempty"`

	// RequestedClubID and RequestedRole capture what the applicant asked
	// for at signup. Both are cleared when the member is approved.
	RequestedClubID string `json:"requestedClubId,omitempty"`
	RequestedRole   Role   `json:"requestedRole,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

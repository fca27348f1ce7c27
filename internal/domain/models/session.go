// internal/domain/models/session.go
package models

// Session is the cached identity of the currently logged-in member: a
// projection of exactly one Member with status approved. If the backing
// member disappears or loses approval, the session is invalidated; if the
// member's username or role changes, the projection is refreshed to match.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

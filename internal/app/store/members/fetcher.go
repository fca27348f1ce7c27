// internal/app/store/members/fetcher.go
package memberstore

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// Fetcher implements auth.UserFetcher against the directory, so every
// request re-resolves the cookie's member id. A missing or non-approved
// member yields nil and the request proceeds anonymously.
type Fetcher struct {
	dir *Store
}

// NewFetcher creates a UserFetcher backed by the directory.
func NewFetcher(dir *Store) *Fetcher {
	return &Fetcher{dir: dir}
}

// FetchUser implements auth.UserFetcher.
func (f *Fetcher) FetchUser(_ context.Context, userID string) *auth.SessionUser {
	m, ok := f.dir.ByID(userID)
	if !ok || m.Status != models.StatusApproved {
		return nil
	}
	return &auth.SessionUser{
		ID:       m.ID,
		Username: m.Username,
		Role:     string(m.Role),
	}
}

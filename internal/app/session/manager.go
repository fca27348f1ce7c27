// internal/app/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dalemusser/clubhub/internal/app/store/blob"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// Login failures carry the exact text shown to the user; the distinct
// messages are part of the product (a rejected signup reads differently
// from a typo'd password).
var (
	ErrMissingCredentials = errors.New("Please enter username and password")
	ErrUnknownAccount     = errors.New("Account not found. Please sign up first.")
	ErrAwaitingApproval   = errors.New("Your account is awaiting approval.")
	ErrRejected           = errors.New("Your signup was rejected. Contact admin.")
	ErrBadCredentials     = errors.New("Wrong username or password")
)

// IsAuthError reports whether err is one of the login failure
// sentinels, whose text is safe to show to the user.
func IsAuthError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrUnknownAccount),
		errors.Is(err, ErrAwaitingApproval),
		errors.Is(err, ErrRejected),
		errors.Is(err, ErrBadCredentials):
		return true
	}
	return false
}

// Manager owns the current authenticated-user projection. The projection
// is cached in the blob store and must always reference an approved
// member of the directory; the manager subscribes to directory changes
// and re-validates itself whenever the member list mutates, so an admin
// revoking or re-roling a user takes effect without a fresh login.
type Manager struct {
	mu      sync.Mutex
	current *models.Session
	loaded  bool

	dir    *memberstore.Store
	src    blob.Store
	writer *blob.Writer
	log    *zap.Logger
}

// NewManager wires the manager to the directory and storage and
// subscribes to directory changes. Call Load before first use.
func NewManager(dir *memberstore.Store, src blob.Store, writer *blob.Writer, logger *zap.Logger) *Manager {
	m := &Manager{dir: dir, src: src, writer: writer, log: logger}
	dir.Subscribe(m.revalidate)
	return m
}

// Load restores the persisted session, if any, and re-validates it
// against the directory. A session whose backing member is missing or
// not approved is discarded; one whose username/role drifted is
// refreshed. Never fails: an unreadable blob means anonymous.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = true

	raw, ok, err := m.src.Get(ctx, blob.SessionKey)
	if err != nil {
		m.log.Warn("session blob read failed, starting anonymous", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var stored models.Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.ID == "" {
		m.log.Warn("session blob corrupt, starting anonymous", zap.Error(err))
		m.writer.Remove(blob.SessionKey)
		return
	}

	fresh, valid := m.resolve(stored.ID)
	if !valid {
		m.writer.Remove(blob.SessionKey)
		return
	}
	m.current = &fresh
}

// Login authenticates a member by username and password. Credential and
// status checks happen in a fixed order so each failure mode keeps its
// own message. On success the projection becomes current and is
// persisted.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	name := normalize.Username(username)
	pass := normalize.Name(password)
	if name == "" || pass == "" {
		return models.Session{}, ErrMissingCredentials
	}

	member, ok := m.dir.ByUsername(name)
	if !ok {
		return models.Session{}, ErrUnknownAccount
	}
	if member.Status == models.StatusPending {
		return models.Session{}, ErrAwaitingApproval
	}
	if member.Status == models.StatusRejected {
		return models.Session{}, ErrRejected
	}
	if !memberstore.CheckPassword(member, pass) {
		return models.Session{}, ErrBadCredentials
	}

	sess := projection(member)

	m.mu.Lock()
	m.current = &sess
	m.persistLocked()
	m.mu.Unlock()

	return sess, nil
}

// Logout clears the session. Always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.writer.Remove(blob.SessionKey)
	m.mu.Unlock()
}

// Refresh re-validates the current session against the directory and
// returns the refreshed projection, or nil when there is no valid
// session. Refreshing twice without an intervening member change yields
// the same projection.
func (m *Manager) Refresh(ctx context.Context) *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}

	fresh, valid := m.resolve(m.current.ID)
	if !valid {
		m.current = nil
		m.writer.Remove(blob.SessionKey)
		return nil
	}

	m.current = &fresh
	m.persistLocked()
	out := fresh
	return &out
}

// Current returns a copy of the active session, or nil when anonymous.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	out := *m.current
	return &out
}

// revalidate runs on every directory change: force logout when the
// backing member is gone or non-approved, refresh and re-persist when
// the username or role changed.
func (m *Manager) revalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}

	fresh, valid := m.resolve(m.current.ID)
	if !valid {
		m.log.Info("session invalidated by directory change",
			zap.String("member_id", m.current.ID))
		m.current = nil
		m.writer.Remove(blob.SessionKey)
		return
	}
	if fresh != *m.current {
		m.current = &fresh
		m.persistLocked()
	}
}

// resolve maps a member id to a live projection. Only approved members
// back a valid session.
func (m *Manager) resolve(id string) (models.Session, bool) {
	member, ok := m.dir.ByID(id)
	if !ok || member.Status != models.StatusApproved {
		return models.Session{}, false
	}
	return projection(member), true
}

// persistLocked mirrors the current session to the blob store. Must be
// called with m.mu held.
func (m *Manager) persistLocked() {
	raw, err := json.Marshal(m.current)
	if err != nil {
		m.log.Error("session encode failed", zap.Error(err))
		return
	}
	m.writer.Set(blob.SessionKey, string(raw))
}

func projection(member models.Member) models.Session {
	return models.Session{
		ID:       member.ID,
		Username: member.Username,
		Role:     member.Role,
	}
}

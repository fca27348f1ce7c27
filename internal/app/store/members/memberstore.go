// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/blob"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Error messages on the exported sentinels are shown verbatim in the
// client, so they read as user-facing text rather than Go error strings.
var (
	ErrMissingFields     = errors.New("All fields are required")
	ErrEmptyPassword     = errors.New("Password cannot be empty")
	ErrDuplicateUsername = errors.New("Username already exists")
	ErrDuplicateEmail    = errors.New("Email already registered")

	errBadRole   = errors.New(`role must be "admin", "leader", or "member"`)
	errBadStatus = errors.New(`status must be "pending", "approved", or "rejected"`)
)

// IsValidation reports whether err is one of the input-validation
// failures (as opposed to a uniqueness conflict).
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrEmptyPassword) ||
		errors.Is(err, errBadRole) ||
		errors.Is(err, errBadStatus)
}

// Store is the membership directory. The in-memory list is authoritative
// and ordered most-recent-first; every mutation mirrors a JSON snapshot
// to the blob store through the best-effort writer and then notifies
// subscribers.
type Store struct {
	mu      sync.Mutex
	members []models.Member

	src    blob.Store
	writer *blob.Writer
	log    *zap.Logger

	subsMu sync.Mutex
	subs   []func()
}

// New creates a directory that hydrates from src and mirrors mutations
// through writer.
func New(src blob.Store, writer *blob.Writer, logger *zap.Logger) *Store {
	return &Store{src: src, writer: writer, log: logger}
}

// Load hydrates the directory from the members blob. A missing blob or a
// read/decode failure degrades to an empty directory; it never fails the
// caller.
func (s *Store) Load(ctx context.Context) {
	raw, ok, err := s.src.Get(ctx, blob.MembersKey)
	if err != nil {
		s.log.Warn("members blob read failed, starting empty", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var members []models.Member
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		s.log.Warn("members blob corrupt, starting empty", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
}

// SeedIfEmpty installs ms as the initial directory when nothing was
// hydrated, persisting the snapshot. Returns false when members already
// exist.
func (s *Store) SeedIfEmpty(ms []models.Member) bool {
	s.mu.Lock()
	if len(s.members) > 0 {
		s.mu.Unlock()
		return false
	}
	s.members = ms
	s.persist()
	s.mu.Unlock()

	s.notify()
	return true
}

// Subscribe registers fn to run after every directory mutation. The
// session manager uses this to re-validate the authenticated user when an
// admin edits the member list.
func (s *Store) Subscribe(fn func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

// notify runs subscribers. Must be called without holding s.mu so
// subscribers can read the directory.
func (s *Store) notify() {
	s.subsMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// persist snapshots the list and hands it to the async writer. Must be
// called with s.mu held.
func (s *Store) persist() {
	raw, err := json.Marshal(s.members)
	if err != nil {
		s.log.Error("members snapshot encode failed", zap.Error(err))
		return
	}
	s.writer.Set(blob.MembersKey, string(raw))
}

// RegisterInput carries a signup request. RequestedRole defaults to
// member when empty.
type RegisterInput struct {
	Name          string
	Username      string
	Email         string
	Password      string
	ClubID        string
	RequestedRole models.Role
}

// Register creates a pending member from a signup. Username and email are
// canonicalized and must be unique (case-insensitive). The new member is
// prepended: the pending queue reads most-recent-first.
func (s *Store) Register(in RegisterInput) (models.Member, error) {
	name := normalize.Name(in.Name)
	username := normalize.Username(in.Username)
	email := normalize.Email(in.Email)
	password := normalize.Name(in.Password)

	if name == "" || username == "" || email == "" || password == "" {
		return models.Member{}, ErrMissingFields
	}

	requestedRole := in.RequestedRole
	if requestedRole == "" {
		requestedRole = models.RoleMember
	}
	if !requestedRole.Valid() {
		return models.Member{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Member{}, err
	}

	s.mu.Lock()
	// Username collisions win over email collisions regardless of where
	// either member sits in the list.
	for _, m := range s.members {
		if m.Username == username {
			s.mu.Unlock()
			return models.Member{}, ErrDuplicateUsername
		}
	}
	for _, m := range s.members {
		if m.Email == email {
			s.mu.Unlock()
			return models.Member{}, ErrDuplicateEmail
		}
	}

	member := models.Member{
		ID:              uuid.NewString(),
		Name:            name,
		Username:        username,
		Email:           email,
		PasswordHash:    string(hash),
		Role:            models.RoleMember,
		Status:          models.StatusPending,
		RequestedClubID: in.ClubID,
		RequestedRole:   requestedRole,
		CreatedAt:       time.Now().UTC(),
	}
	s.members = append([]models.Member{member}, s.members...)
	s.persist()
	s.mu.Unlock()

	s.notify()
	return member, nil
}

// ApproveOverrides lets the moderator pick a different role or club than
// the applicant requested. A nil ClubID / empty Role falls through to the
// requested values.
type ApproveOverrides struct {
	Role   models.Role
	ClubID *string
}

// Approve marks the member approved and resolves role and club:
// override, else requested value, else current value. Both requested
// fields are cleared. Unknown ids are a no-op.
func (s *Store) Approve(id string, ov ApproveOverrides) error {
	if ov.Role != "" && !ov.Role.Valid() {
		return errBadRole
	}

	s.mu.Lock()
	changed := false
	for i := range s.members {
		m := &s.members[i]
		if m.ID != id {
			continue
		}

		m.Status = models.StatusApproved
		switch {
		case ov.Role != "":
			m.Role = ov.Role
		case m.RequestedRole != "":
			m.Role = m.RequestedRole
		case m.Role == "":
			m.Role = models.RoleMember
		}
		switch {
		case ov.ClubID != nil:
			m.ClubID = *ov.ClubID
		case m.RequestedClubID != "":
			m.ClubID = m.RequestedClubID
		}
		m.RequestedRole = ""
		m.RequestedClubID = ""
		changed = true
		break
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// Reject marks the member rejected. Unknown ids are a no-op.
func (s *Store) Reject(id string) error {
	s.mu.Lock()
	changed := false
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Status = models.StatusRejected
			changed = true
			break
		}
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// AssignRole overwrites the member's role directly. Unlike Approve it
// does not touch status or club assignment.
func (s *Store) AssignRole(id string, role models.Role) error {
	if !role.Valid() {
		return errBadRole
	}

	s.mu.Lock()
	changed := false
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Role = role
			changed = true
			break
		}
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// ResetPassword replaces the member's password. The new password must be
// non-blank after trimming.
func (s *Store) ResetPassword(id, newPassword string) error {
	password := normalize.Name(newPassword)
	if password == "" {
		return ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := false
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].PasswordHash = string(hash)
			changed = true
			break
		}
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// MemberUpdate holds the optional fields an admin can edit directly.
// Nil fields are left alone. Password changes go through ResetPassword.
type MemberUpdate struct {
	Name     *string
	Username *string
	Email    *string
	Role     *models.Role
	Status   *models.Status
	ClubID   *string
}

// Update shallow-merges upd into the member. Role and status values must
// be valid; beyond that the merge is unchecked, matching the directness
// of the admin edit surface. Unknown ids are a no-op.
func (s *Store) Update(id string, upd MemberUpdate) error {
	if upd.Role != nil && !upd.Role.Valid() {
		return errBadRole
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return errBadStatus
	}

	s.mu.Lock()
	changed := false
	for i := range s.members {
		m := &s.members[i]
		if m.ID != id {
			continue
		}
		if upd.Name != nil {
			m.Name = normalize.Name(*upd.Name)
		}
		if upd.Username != nil {
			m.Username = normalize.Username(*upd.Username)
		}
		if upd.Email != nil {
			m.Email = normalize.Email(*upd.Email)
		}
		if upd.Role != nil {
			m.Role = *upd.Role
		}
		if upd.Status != nil {
			m.Status = *upd.Status
		}
		if upd.ClubID != nil {
			m.ClubID = *upd.ClubID
		}
		changed = true
		break
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// ByUsername looks up a member by case-insensitive username.
func (s *Store) ByUsername(username string) (models.Member, bool) {
	handle := normalize.Username(username)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.Username == handle {
			return m, true
		}
	}
	return models.Member{}, false
}

// ByID looks up a member by id.
func (s *Store) ByID(id string) (models.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// Members returns a snapshot of the full directory, most recent first.
func (s *Store) Members() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Pending returns the members awaiting moderation, most recent first.
func (s *Store) Pending() []models.Member {
	return s.filter(models.StatusPending)
}

// Approved returns the approved members, most recent first.
func (s *Store) Approved() []models.Member {
	return s.filter(models.StatusApproved)
}

func (s *Store) filter(status models.Status) []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Member
	for _, m := range s.members {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// CheckPassword compares password against the member's stored hash.
func CheckPassword(m models.Member, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}

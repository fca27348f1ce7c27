package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/session"
	"github.com/dalemusser/clubhub/internal/app/store/blob"
	contentstore "github.com/dalemusser/clubhub/internal/app/store/content"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// Fixtures bundles the in-memory stores used by handler tests. All
// stores share one blob.Memory and one writer, mirroring how the
// bootstrap wires them in production.
type Fixtures struct {
	t *testing.T

	Blobs     *blob.Memory
	Writer    *blob.Writer
	Directory *memberstore.Store
	Content   *contentstore.Store
	Sessions  *session.Manager
}

// NewFixtures creates hydrated in-memory stores for a test. The writer
// is closed when the test finishes.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()

	mem := blob.NewMemory()
	writer := blob.NewWriter(mem, zap.NewNop())
	t.Cleanup(writer.Close)

	directory := memberstore.New(mem, writer, zap.NewNop())
	content := contentstore.New(mem, writer, zap.NewNop())
	sessions := session.NewManager(directory, mem, writer, zap.NewNop())

	ctx := context.Background()
	directory.Load(ctx)
	content.Load(ctx)
	sessions.Load(ctx)

	return &Fixtures{
		t:         t,
		Blobs:     mem,
		Writer:    writer,
		Directory: directory,
		Content:   content,
		Sessions:  sessions,
	}
}

// RegisterMember registers a pending member with placeholder contact
// details derived from the username.
func (f *Fixtures) RegisterMember(username, password string) models.Member {
	f.t.Helper()
	m, err := f.Directory.Register(memberstore.RegisterInput{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.edu",
		Password: password,
	})
	if err != nil {
		f.t.Fatalf("register %q: %v", username, err)
	}
	return m
}

// ApprovedMember registers and approves a member in one step.
func (f *Fixtures) ApprovedMember(username, password string) models.Member {
	f.t.Helper()
	m := f.RegisterMember(username, password)
	if err := f.Directory.Approve(m.ID, memberstore.ApproveOverrides{}); err != nil {
		f.t.Fatalf("approve %q: %v", username, err)
	}
	got, ok := f.Directory.ByID(m.ID)
	if !ok {
		f.t.Fatalf("member %q missing after approval", username)
	}
	return got
}

// AdminMember registers, approves, and promotes a member to admin.
func (f *Fixtures) AdminMember(username, password string) models.Member {
	f.t.Helper()
	m := f.ApprovedMember(username, password)
	if err := f.Directory.AssignRole(m.ID, models.RoleAdmin); err != nil {
		f.t.Fatalf("promote %q: %v", username, err)
	}
	got, _ := f.Directory.ByID(m.ID)
	return got
}

// Club adds a club to the catalog.
func (f *Fixtures) Club(name, desc string) models.Club {
	f.t.Helper()
	c, err := f.Content.AddClub(contentstore.ClubInput{Name: name, Desc: desc})
	if err != nil {
		f.t.Fatalf("add club %q: %v", name, err)
	}
	return c
}

// Event adds a standalone event to the calendar.
func (f *Fixtures) Event(title, date string) models.Event {
	f.t.Helper()
	ev, err := f.Content.AddEvent(contentstore.EventInput{Title: title, Date: date})
	if err != nil {
		f.t.Fatalf("add event %q: %v", title, err)
	}
	return ev
}

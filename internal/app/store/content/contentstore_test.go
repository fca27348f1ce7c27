// internal/app/store/content/contentstore_test.go
package contentstore

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/blob"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*Store, *blob.Memory, *blob.Writer) {
	t.Helper()
	mem := blob.NewMemory()
	writer := blob.NewWriter(mem, zap.NewNop())
	t.Cleanup(writer.Close)
	s := New(mem, writer, zap.NewNop())
	s.Load(context.Background())
	return s, mem, writer
}

func TestAddClub(t *testing.T) {
	s, _, _ := newStore(t)

	club, err := s.AddClub(ClubInput{Name: "  Chess Club ", Desc: "Weekly games"})
	if err != nil {
		t.Fatalf("AddClub: %v", err)
	}
	if club.ID == "" {
		t.Error("expected generated id")
	}
	if club.Name != "Chess Club" {
		t.Errorf("Name = %q", club.Name)
	}
	if club.Events == nil || len(club.Events) != 0 {
		t.Errorf("Events = %#v, want empty non-nil list", club.Events)
	}

	if _, err := s.AddClub(ClubInput{Name: "   "}); err != ErrMissingTitle {
		t.Errorf("blank name err = %v, want ErrMissingTitle", err)
	}
}

func TestClubs_MostRecentFirst(t *testing.T) {
	s, _, _ := newStore(t)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if _, err := s.AddClub(ClubInput{Name: name}); err != nil {
			t.Fatalf("AddClub(%q): %v", name, err)
		}
	}

	got := s.Clubs()
	want := []string{"Gamma", "Beta", "Alpha"}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("clubs[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestUpdateClub_ShallowMerge(t *testing.T) {
	s, _, _ := newStore(t)
	club, _ := s.AddClub(ClubInput{Name: "Chess Club", Desc: "Weekly games"})
	s.AddEventToClub(club.ID, ClubEventInput{Title: "Blitz night"})

	newDesc := "Casual and rated play"
	s.UpdateClub(club.ID, ClubUpdate{Desc: &newDesc})

	got, ok := s.ClubByID(club.ID)
	if !ok {
		t.Fatal("club vanished")
	}
	if got.Name != "Chess Club" {
		t.Errorf("unset field changed: Name = %q", got.Name)
	}
	if got.Desc != newDesc {
		t.Errorf("Desc = %q", got.Desc)
	}
	if len(got.Events) != 1 {
		t.Errorf("update touched nested events: %#v", got.Events)
	}

	// Unknown id is a silent no-op.
	s.UpdateClub("missing", ClubUpdate{Desc: &newDesc})
}

func TestDeleteClub(t *testing.T) {
	s, _, _ := newStore(t)
	club, _ := s.AddClub(ClubInput{Name: "Chess Club"})
	keep, _ := s.AddClub(ClubInput{Name: "Art Club"})

	s.DeleteClub(club.ID)

	if _, ok := s.ClubByID(club.ID); ok {
		t.Error("deleted club still present")
	}
	if _, ok := s.ClubByID(keep.ID); !ok {
		t.Error("unrelated club removed")
	}
	s.DeleteClub("missing") // no-op
}

func TestClubEvents_AddThenDeleteRestoresList(t *testing.T) {
	s, _, _ := newStore(t)
	club, _ := s.AddClub(ClubInput{Name: "Chess Club"})
	s.AddEventToClub(club.ID, ClubEventInput{Title: "Opening night"})

	before, _ := s.ClubByID(club.ID)

	ev, err := s.AddEventToClub(club.ID, ClubEventInput{Title: "Blitz night", Date: "2026-09-05"})
	if err != nil {
		t.Fatalf("AddEventToClub: %v", err)
	}
	mid, _ := s.ClubByID(club.ID)
	if len(mid.Events) != 2 || mid.Events[0].ID != ev.ID {
		t.Fatalf("expected new event prepended, got %#v", mid.Events)
	}

	s.DeleteEventFromClub(club.ID, ev.ID)
	after, _ := s.ClubByID(club.ID)
	if !reflect.DeepEqual(after.Events, before.Events) {
		t.Errorf("delete did not restore list: %#v vs %#v", after.Events, before.Events)
	}
}

func TestClubSnapshots_DetachedFromLaterMutations(t *testing.T) {
	s, _, _ := newStore(t)
	club, _ := s.AddClub(ClubInput{Name: "Chess Club"})
	s.AddEventToClub(club.ID, ClubEventInput{Title: "first"})
	ev, _ := s.AddEventToClub(club.ID, ClubEventInput{Title: "second"})

	byID, _ := s.ClubByID(club.ID)
	list := s.Clubs()

	s.DeleteEventFromClub(club.ID, ev.ID)

	if len(byID.Events) != 2 || byID.Events[0].Title != "second" {
		t.Errorf("ClubByID snapshot mutated by later delete: %#v", byID.Events)
	}
	if len(list[0].Events) != 2 || list[0].Events[0].Title != "second" {
		t.Errorf("Clubs snapshot mutated by later delete: %#v", list[0].Events)
	}
}

func TestAddEventToClub_UnknownClubIsNoop(t *testing.T) {
	s, _, _ := newStore(t)
	if _, err := s.AddEventToClub("missing", ClubEventInput{Title: "Blitz"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Clubs()) != 0 {
		t.Error("no club should have been created")
	}
}

func TestAddEvent(t *testing.T) {
	s, _, _ := newStore(t)

	ev, err := s.AddEvent(EventInput{Title: " Club Fair ", Date: "2026-09-01", Desc: "All clubs"})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if ev.ID == "" || ev.Title != "Club Fair" {
		t.Errorf("event = %+v", ev)
	}

	if _, err := s.AddEvent(EventInput{Title: ""}); err != ErrMissingTitle {
		t.Errorf("blank title err = %v, want ErrMissingTitle", err)
	}

	second, _ := s.AddEvent(EventInput{Title: "Open Mic"})
	got := s.Events()
	if len(got) != 2 || got[0].ID != second.ID {
		t.Errorf("expected newest first, got %#v", got)
	}
}

func TestUpdateEvent_ShallowMerge(t *testing.T) {
	s, _, _ := newStore(t)
	ev, _ := s.AddEvent(EventInput{Title: "Club Fair", Date: "2026-09-01", Desc: "All clubs"})

	date := "2026-09-08"
	s.UpdateEvent(ev.ID, EventUpdate{Date: &date})

	got, _ := s.EventByID(ev.ID)
	if got.Title != "Club Fair" || got.Desc != "All clubs" {
		t.Errorf("unset fields changed: %+v", got)
	}
	if got.Date != date {
		t.Errorf("Date = %q", got.Date)
	}
}

func TestDeleteEvent(t *testing.T) {
	s, _, _ := newStore(t)
	ev, _ := s.AddEvent(EventInput{Title: "Club Fair"})
	s.DeleteEvent(ev.ID)
	if len(s.Events()) != 0 {
		t.Error("event not removed")
	}
	s.DeleteEvent("missing") // no-op
}

func TestSanitizesDescriptions(t *testing.T) {
	s, _, _ := newStore(t)

	club, err := s.AddClub(ClubInput{
		Name: "Chess Club",
		Desc: `Open play<script>alert('x')</script>`,
	})
	if err != nil {
		t.Fatalf("AddClub: %v", err)
	}
	if strings.Contains(club.Desc, "<script") {
		t.Errorf("script survived sanitization: %q", club.Desc)
	}
	if !strings.Contains(club.Desc, "Open play") {
		t.Errorf("text lost in sanitization: %q", club.Desc)
	}
}

func TestSubscribe_FiresOnMutation(t *testing.T) {
	s, _, _ := newStore(t)
	calls := 0
	s.Subscribe(func() { calls++ })

	club, _ := s.AddClub(ClubInput{Name: "Chess Club"})
	s.AddEvent(EventInput{Title: "Club Fair"})
	s.DeleteClub(club.ID)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	s.DeleteClub("missing")
	if calls != 3 {
		t.Errorf("no-op delete should not notify, calls = %d", calls)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, mem, writer := newStore(t)
	club, _ := s.AddClub(ClubInput{Name: "Chess Club", Desc: "Weekly games"})
	s.AddEventToClub(club.ID, ClubEventInput{Title: "Blitz night"})
	s.AddEvent(EventInput{Title: "Club Fair", Date: "2026-09-01"})
	writer.Flush()

	writer2 := blob.NewWriter(mem, zap.NewNop())
	defer writer2.Close()
	s2 := New(mem, writer2, zap.NewNop())
	s2.Load(context.Background())

	clubs := s2.Clubs()
	if len(clubs) != 1 || clubs[0].Name != "Chess Club" || len(clubs[0].Events) != 1 {
		t.Errorf("restored clubs = %#v", clubs)
	}
	events := s2.Events()
	if len(events) != 1 || events[0].Title != "Club Fair" {
		t.Errorf("restored events = %#v", events)
	}
}

func TestLoad_CorruptBlobStartsEmpty(t *testing.T) {
	mem := blob.NewMemory()
	if err := mem.Set(context.Background(), blob.ClubsKey, "{oops"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	writer := blob.NewWriter(mem, zap.NewNop())
	defer writer.Close()
	s := New(mem, writer, zap.NewNop())
	s.Load(context.Background())
	if len(s.Clubs()) != 0 {
		t.Error("corrupt blob should yield empty catalog")
	}
}

// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/dalemusser/clubhub/internal/app/store/blob"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrMissingTitle = errors.New("title is required")

// Store holds the club and event catalogs in memory and mirrors them to
// the blob store. Memory is authoritative; persistence is best effort.
// Clubs and standalone events are independent lists persisted under
// separate keys.
type Store struct {
	mu     sync.Mutex
	clubs  []models.Club
	events []models.Event

	src    blob.Store
	writer *blob.Writer
	log    *zap.Logger

	subsMu sync.Mutex
	subs   []func()
}

func New(src blob.Store, writer *blob.Writer, logger *zap.Logger) *Store {
	return &Store{src: src, writer: writer, log: logger}
}

// Load hydrates both catalogs from storage. Missing or corrupt blobs
// leave the corresponding catalog empty; Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clubs = loadList[models.Club](ctx, s.src, blob.ClubsKey, s.log)
	s.events = loadList[models.Event](ctx, s.src, blob.EventsKey, s.log)
}

func loadList[T any](ctx context.Context, src blob.Store, key string, log *zap.Logger) []T {
	raw, ok, err := src.Get(ctx, key)
	if err != nil {
		log.Warn("content blob read failed, starting empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Warn("content blob corrupt, starting empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return out
}

// SeedIfEmpty installs the initial catalogs when nothing was hydrated,
// persisting both snapshots. Returns false when either catalog already
// has entries.
func (s *Store) SeedIfEmpty(clubs []models.Club, events []models.Event) bool {
	s.mu.Lock()
	if len(s.clubs) > 0 || len(s.events) > 0 {
		s.mu.Unlock()
		return false
	}
	s.clubs = clubs
	s.events = events
	s.persistClubsLocked()
	s.persistEventsLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// Subscribe registers fn to run after every catalog mutation.
func (s *Store) Subscribe(fn func()) {
	s.subsMu.Lock()
	s.subs = append(s.subs, fn)
	s.subsMu.Unlock()
}

func (s *Store) notify() {
	s.subsMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) persistClubsLocked() {
	raw, err := json.Marshal(s.clubs)
	if err != nil {
		s.log.Error("clubs encode failed", zap.Error(err))
		return
	}
	s.writer.Set(blob.ClubsKey, string(raw))
}

func (s *Store) persistEventsLocked() {
	raw, err := json.Marshal(s.events)
	if err != nil {
		s.log.Error("events encode failed", zap.Error(err))
		return
	}
	s.writer.Set(blob.EventsKey, string(raw))
}

// Descriptions accept limited HTML; everything else is plain text.
func cleanText(s string) string {
	return strings.TrimSpace(s)
}

func cleanDesc(s string) string {
	return strings.TrimSpace(htmlsanitize.Sanitize(s))
}

// cloneClub copies the club and its event slice so callers never share
// backing arrays with the store.
func cloneClub(c models.Club) models.Club {
	evs := make([]models.ClubEvent, len(c.Events))
	copy(evs, c.Events)
	c.Events = evs
	return c
}

// Clubs returns the catalog, most recently added first.
func (s *Store) Clubs() []models.Club {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Club, len(s.clubs))
	for i, c := range s.clubs {
		out[i] = cloneClub(c)
	}
	return out
}

func (s *Store) ClubByID(id string) (models.Club, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clubs {
		if c.ID == id {
			return cloneClub(c), true
		}
	}
	return models.Club{}, false
}

type ClubInput struct {
	Name string
	Desc string
}

// AddClub prepends a new club with a generated id and an empty event
// list.
func (s *Store) AddClub(in ClubInput) (models.Club, error) {
	name := cleanText(in.Name)
	if name == "" {
		return models.Club{}, ErrMissingTitle
	}

	club := models.Club{
		ID:     uuid.NewString(),
		Name:   name,
		Desc:   cleanDesc(in.Desc),
		Events: []models.ClubEvent{},
	}

	s.mu.Lock()
	s.clubs = append([]models.Club{club}, s.clubs...)
	s.persistClubsLocked()
	s.mu.Unlock()
	s.notify()
	return club, nil
}

type ClubUpdate struct {
	Name *string
	Desc *string
}

// UpdateClub merges the set fields into the club. Unknown ids are a
// silent no-op; the nested event list is never touched here.
func (s *Store) UpdateClub(id string, upd ClubUpdate) {
	s.mu.Lock()
	changed := false
	for i := range s.clubs {
		if s.clubs[i].ID != id {
			continue
		}
		if upd.Name != nil {
			s.clubs[i].Name = cleanText(*upd.Name)
		}
		if upd.Desc != nil {
			s.clubs[i].Desc = cleanDesc(*upd.Desc)
		}
		changed = true
		break
	}
	if changed {
		s.persistClubsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// DeleteClub removes the club and its nested events. Members that
// reference the club keep their clubId; the reference simply dangles.
func (s *Store) DeleteClub(id string) {
	s.mu.Lock()
	changed := false
	for i, c := range s.clubs {
		if c.ID == id {
			s.clubs = append(s.clubs[:i], s.clubs[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.persistClubsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

type ClubEventInput struct {
	Title       string
	Date        string
	Description string
}

// AddEventToClub prepends an event to the club's own list. Unknown club
// ids are a silent no-op.
func (s *Store) AddEventToClub(clubID string, in ClubEventInput) (models.ClubEvent, error) {
	title := cleanText(in.Title)
	if title == "" {
		return models.ClubEvent{}, ErrMissingTitle
	}

	ev := models.ClubEvent{
		ID:          uuid.NewString(),
		Title:       title,
		Date:        cleanText(in.Date),
		Description: cleanDesc(in.Description),
	}

	s.mu.Lock()
	changed := false
	for i := range s.clubs {
		if s.clubs[i].ID != clubID {
			continue
		}
		s.clubs[i].Events = append([]models.ClubEvent{ev}, s.clubs[i].Events...)
		changed = true
		break
	}
	if changed {
		s.persistClubsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return ev, nil
}

// DeleteEventFromClub removes one event from the club's list. Unknown
// club or event ids are a silent no-op.
func (s *Store) DeleteEventFromClub(clubID, eventID string) {
	s.mu.Lock()
	changed := false
	for i := range s.clubs {
		if s.clubs[i].ID != clubID {
			continue
		}
		evs := s.clubs[i].Events
		for j, ev := range evs {
			if ev.ID == eventID {
				s.clubs[i].Events = append(evs[:j], evs[j+1:]...)
				changed = true
				break
			}
		}
		break
	}
	if changed {
		s.persistClubsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Events returns the standalone calendar, most recently added first.
func (s *Store) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) EventByID(id string) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.Event{}, false
}

type EventInput struct {
	Title string
	Date  string
	Desc  string
}

func (s *Store) AddEvent(in EventInput) (models.Event, error) {
	title := cleanText(in.Title)
	if title == "" {
		return models.Event{}, ErrMissingTitle
	}

	ev := models.Event{
		ID:    uuid.NewString(),
		Title: title,
		Date:  cleanText(in.Date),
		Desc:  cleanDesc(in.Desc),
	}

	s.mu.Lock()
	s.events = append([]models.Event{ev}, s.events...)
	s.persistEventsLocked()
	s.mu.Unlock()
	s.notify()
	return ev, nil
}

type EventUpdate struct {
	Title *string
	Date  *string
	Desc  *string
}

// UpdateEvent merges the set fields into the event. Unknown ids are a
// silent no-op.
func (s *Store) UpdateEvent(id string, upd EventUpdate) {
	s.mu.Lock()
	changed := false
	for i := range s.events {
		if s.events[i].ID != id {
			continue
		}
		if upd.Title != nil {
			s.events[i].Title = cleanText(*upd.Title)
		}
		if upd.Date != nil {
			s.events[i].Date = cleanText(*upd.Date)
		}
		if upd.Desc != nil {
			s.events[i].Desc = cleanDesc(*upd.Desc)
		}
		changed = true
		break
	}
	if changed {
		s.persistEventsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteEvent(id string) {
	s.mu.Lock()
	changed := false
	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.persistEventsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

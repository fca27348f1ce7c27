// internal/domain/models/event.go
package models

// Event is a campus-wide event, independent of any club. See ClubEvent
// for the nested-in-club shape.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Desc  string `json:"desc"`
}

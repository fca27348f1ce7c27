// internal/domain/models/club.go
package models

// Club is a directory entry for a campus club or society. Its Events list
// is ordered newest-first; new events are prepended.
//
// Deleting a club does not touch members whose ClubID references it; the
// reference is left dangling on purpose (the source system never resolved
// whether orphan, cascade, or block was intended).
type Club struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Desc   string      `json:"desc"`
	Events []ClubEvent `json:"events"`
}

// ClubEvent is an event nested inside a club. It is deliberately a
// distinct type from the top-level Event: the two shapes disagree on the
// description field name and are kept separate rather than unified.
type ClubEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

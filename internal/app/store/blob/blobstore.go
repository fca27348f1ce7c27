// internal/app/store/blob/blobstore.go
package blob

import "context"

// Blob keys for the persisted collections. The values are carried over
// from the first shipping release so existing stored data stays readable.
const (
	MembersKey = "clubs_hub_members_v1"
	SessionKey = "clubs_hub_user_v1"
	ClubsKey   = "clubs_hub_clubs_v1"
	EventsKey  = "clubs_hub_events_v1"
)

// Store is the key→string persistence collaborator. Each value is a
// JSON-encoded snapshot of one collection or record. Callers must
// tolerate any of these operations failing without crashing: in-memory
// state is authoritative and the persisted copy is best-effort.
type Store interface {
	// Get returns the value for key. The second result is false when the
	// key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key.
	Clear(ctx context.Context) error
}

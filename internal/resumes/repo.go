package resumes

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("resume record not found")

// Repo defines keyed persistence for resume records and AI review markers.
// The key is a user ID for resume versions, or AIReviewKey(userID) for the
// marker namespace; both live in the same table.
type Repo interface {
	// Put appends a record. Records are never updated in place.
	Put(ctx context.Context, rec Record) error
	// Latest returns the newest record for a key, or ErrNotFound.
	Latest(ctx context.Context, key string) (Record, error)
	// All returns every record for a key, newest first.
	All(ctx context.Context, key string) ([]Record, error)
	// DeleteAll removes every record for a key and reports how many went.
	DeleteAll(ctx context.Context, key string) (int, error)
}

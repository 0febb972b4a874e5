package object

import "context"

// SavedObject identifies a stored resume PDF.
type SavedObject struct {
	Key string
	URL string
}

// Store abstracts resume PDF storage. Keys are namespaced per user so that
// ClearUser can remove everything a user uploaded.
type Store interface {
	// Save writes a PDF under the user's namespace and returns its key
	// and publicly reachable URL.
	Save(ctx context.Context, userID string, data []byte) (SavedObject, error)
	// Delete removes a single object; used to compensate for a failed
	// metadata write after an upload.
	Delete(ctx context.Context, key string) error
	// ClearUser removes every object in the user's namespace. Partial
	// failure is reported as an error without rolling back deletes that
	// succeeded.
	ClearUser(ctx context.Context, userID string) error
}

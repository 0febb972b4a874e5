package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resuralph/internal/shared/storage/object"
)

const uploadsPrefix = "uploads"

// Store implements object.Store on the local filesystem, for dev runs
// without AWS credentials.
type Store struct {
	baseDir string
	now     func() time.Time
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// Save writes the PDF under uploads/<userID>/ with a millisecond timestamp name.
func (s *Store) Save(ctx context.Context, userID string, data []byte) (object.SavedObject, error) {
	if err := ctx.Err(); err != nil {
		return object.SavedObject{}, err
	}

	key := fmt.Sprintf("%s/%s/%d.pdf", uploadsPrefix, userID, s.now().UnixMilli())
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return object.SavedObject{}, fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return object.SavedObject{}, fmt.Errorf("write object: %w", err)
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		abs = fullPath
	}
	return object.SavedObject{Key: key, URL: "file://" + filepath.ToSlash(abs)}, nil
}

// Delete removes one object.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage key")
	}
	return os.Remove(filepath.Join(s.baseDir, clean))
}

// ClearUser removes the user's upload directory.
func (s *Store) ClearUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(userID, "/\\.") {
		return fmt.Errorf("invalid user id")
	}
	return os.RemoveAll(filepath.Join(s.baseDir, uploadsPrefix, userID))
}

var _ object.Store = (*Store)(nil)

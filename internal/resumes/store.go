package resumes

import (
	"context"
	"time"

	"resuralph/internal/shared/telemetry"
)

// Store is the sole owner of resume and AI-review-marker persistence.
// Every operation swallows storage errors: callers get a neutral failure
// value (false, zero Record, empty slice) and the underlying error is
// logged here with the user ID and operation. Callers check truthiness,
// never error kinds.
//
// Concurrent Update calls for one user race on version numbering; the last
// write wins and a duplicate version number is possible. That matches the
// append-only storage model and is accepted rather than locked around.
type Store struct {
	Repo Repo
	Now  func() time.Time
}

// NewStore constructs a Store over the given repo.
func NewStore(repo Repo) *Store {
	return &Store{Repo: repo, Now: time.Now}
}

// GetLatest returns the most recent resume record for a user.
func (s *Store) GetLatest(ctx context.Context, userID string) (Record, bool) {
	rec, err := s.Repo.Latest(ctx, userID)
	if err != nil {
		if err != ErrNotFound {
			telemetry.Error("resumes.get_latest.failed", map[string]any{
				"user_id": userID, "error": err.Error(),
			})
		}
		return Record{}, false
	}
	return rec, true
}

// GetAll returns all resume records for a user, newest first.
func (s *Store) GetAll(ctx context.Context, userID string) []Record {
	recs, err := s.Repo.All(ctx, userID)
	if err != nil {
		telemetry.Error("resumes.get_all.failed", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return nil
	}
	return recs
}

// Save appends a resume record with an explicit version.
func (s *Store) Save(ctx context.Context, userID, url, name, version string) bool {
	rec := Record{
		UserID:    userID,
		Version:   version,
		URL:       url,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Put(ctx, rec); err != nil {
		telemetry.Error("resumes.save.failed", map[string]any{
			"user_id": userID, "version": version, "error": err.Error(),
		})
		return false
	}
	return true
}

// Update appends a record with the next version for the user ("v1" when
// none exists) and returns the new version string, or "" on failure.
func (s *Store) Update(ctx context.Context, userID, url, name string) string {
	latest := ""
	if rec, ok := s.GetLatest(ctx, userID); ok {
		latest = rec.Version
	}

	next, err := NextVersion(latest)
	if err != nil {
		telemetry.Error("resumes.update.bad_version", map[string]any{
			"user_id": userID, "version": latest, "error": err.Error(),
		})
		return ""
	}

	if !s.Save(ctx, userID, url, name, next) {
		return ""
	}
	return next
}

// ClearAll deletes every resume record for a user and returns how many
// were removed. A zero count is still success; only storage errors report
// failure.
func (s *Store) ClearAll(ctx context.Context, userID string) (int, bool) {
	n, err := s.Repo.DeleteAll(ctx, userID)
	if err != nil {
		telemetry.Error("resumes.clear_all.failed", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return 0, false
	}
	telemetry.Info("resumes.cleared", map[string]any{"user_id": userID, "count": n})
	return n, true
}

// LastAIReview returns the newest AI review marker for a user.
func (s *Store) LastAIReview(ctx context.Context, userID string) (Record, bool) {
	rec, err := s.Repo.Latest(ctx, AIReviewKey(userID))
	if err != nil {
		if err != ErrNotFound {
			telemetry.Error("resumes.last_ai_review.failed", map[string]any{
				"user_id": userID, "error": err.Error(),
			})
		}
		return Record{}, false
	}
	return rec, true
}

// RecordAIReview appends an AI review marker for the user. Markers share
// the resumes table under a derived key and are never deleted.
func (s *Store) RecordAIReview(ctx context.Context, userID string) bool {
	now := s.now()
	rec := Record{
		UserID:    AIReviewKey(userID),
		Version:   "ai_review_" + now.UTC().Format(time.RFC3339Nano),
		CreatedAt: now,
	}
	if err := s.Repo.Put(ctx, rec); err != nil {
		telemetry.Error("resumes.record_ai_review.failed", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return false
	}
	return true
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

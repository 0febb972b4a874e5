package ratelimit

import (
	"context"
	"fmt"
	"time"

	"resuralph/internal/resumes"
	"resuralph/internal/shared/telemetry"
)

// AIReviewInterval is how often a user may run an AI review.
const AIReviewInterval = 24 * time.Hour

// Limiter gates the once-per-day AI review using the marker trail kept in
// the resume store. It fails open: any error while checking resolves to
// allowed, trading strictness for availability.
type Limiter struct {
	Store *resumes.Store
	Now   func() time.Time
}

// NewLimiter constructs a Limiter over the given store.
func NewLimiter(store *resumes.Store) *Limiter {
	return &Limiter{Store: store, Now: time.Now}
}

// CanUseAIReview reports whether the user may run an AI review now. When
// denied, remaining holds the wait formatted as "<H>h <M>m" (or "<M>m"
// under an hour).
func (l *Limiter) CanUseAIReview(ctx context.Context, userID string) (allowed bool, remaining string) {
	marker, ok := l.Store.LastAIReview(ctx, userID)
	if !ok {
		// No marker, or a storage error the store already logged: allow.
		return true, ""
	}

	elapsed := l.now().Sub(marker.CreatedAt)
	if elapsed >= AIReviewInterval {
		return true, ""
	}

	return false, FormatRemaining(AIReviewInterval - elapsed)
}

// RecordUsage appends a marker with the current timestamp. The caller
// decides when: usage is recorded once review generation is confirmed
// successful, not automatically on check.
func (l *Limiter) RecordUsage(ctx context.Context, userID string) bool {
	ok := l.Store.RecordAIReview(ctx, userID)
	if !ok {
		telemetry.Error("ratelimit.record_usage.failed", map[string]any{"user_id": userID})
	}
	return ok
}

// FormatRemaining renders a wait duration as whole hours and minutes,
// truncating toward zero, minutes only when under one hour.
func FormatRemaining(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (l *Limiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

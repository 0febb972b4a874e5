package ratelimit

import (
	"context"
	"testing"
	"time"

	"resuralph/internal/resumes"
)

func newTestLimiter(now time.Time) (*Limiter, *resumes.Store) {
	store := resumes.NewStore(resumes.NewMemoryRepo())
	store.Now = func() time.Time { return now }
	l := NewLimiter(store)
	l.Now = func() time.Time { return now }
	return l, store
}

func TestCanUseAIReviewFirstTime(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	allowed, remaining := l.CanUseAIReview(context.Background(), "u1")
	if !allowed {
		t.Fatalf("first use denied, remaining=%q", remaining)
	}
	if remaining != "" {
		t.Errorf("remaining = %q, want empty", remaining)
	}
}

func TestCanUseAIReviewDeniedWithinWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	l, _ := newTestLimiter(start)

	if !l.RecordUsage(ctx, "u1") {
		t.Fatal("RecordUsage failed")
	}

	// 10 hours later: 14h 0m remain.
	l.Now = func() time.Time { return start.Add(10 * time.Hour) }
	allowed, remaining := l.CanUseAIReview(ctx, "u1")
	if allowed {
		t.Fatal("expected denial inside the 24h window")
	}
	if remaining != "14h 0m" {
		t.Errorf("remaining = %q, want \"14h 0m\"", remaining)
	}
}

func TestCanUseAIReviewAllowedAfterWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	l, _ := newTestLimiter(start)

	l.RecordUsage(ctx, "u1")

	l.Now = func() time.Time { return start.Add(AIReviewInterval) }
	if allowed, _ := l.CanUseAIReview(ctx, "u1"); !allowed {
		t.Error("expected allowance exactly at the window boundary")
	}

	l.Now = func() time.Time { return start.Add(25 * time.Hour) }
	if allowed, _ := l.CanUseAIReview(ctx, "u1"); !allowed {
		t.Error("expected allowance after the window")
	}
}

func TestLimiterIsPerUser(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	l, _ := newTestLimiter(start)

	l.RecordUsage(ctx, "u1")

	if allowed, _ := l.CanUseAIReview(ctx, "u2"); !allowed {
		t.Error("another user's usage blocked u2")
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{23*time.Hour + 59*time.Minute, "23h 59m"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
		{time.Hour, "1h 0m"},
		{45 * time.Minute, "45m"},
		{90 * time.Second, "1m"},
		{30 * time.Second, "0m"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

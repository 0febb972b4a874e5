package resumes

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one stored resume version for a user. Records are append-only:
// an update writes a new record with the next version, never mutates an
// existing one. For a given user the versions form a contiguous v1..vN
// sequence and the highest N is the latest.
type Record struct {
	UserID    string
	Version   string
	URL       string
	Name      string
	CreatedAt time.Time
}

// aiReviewKeySuffix derives the marker namespace that shares the resumes
// table. Marker records are not resume versions; they only carry a
// created_at timestamp used by the rate limiter.
const aiReviewKeySuffix = "#ai_review"

// AIReviewKey returns the storage key under which a user's AI review
// markers are kept.
func AIReviewKey(userID string) string {
	return userID + aiReviewKeySuffix
}

// VersionNumber parses the numeric suffix of a "v<N>" version string.
func VersionNumber(version string) (int, error) {
	if !strings.HasPrefix(version, "v") {
		return 0, fmt.Errorf("malformed version %q", version)
	}
	n, err := strconv.Atoi(version[1:])
	if err != nil {
		return 0, fmt.Errorf("malformed version %q", version)
	}
	return n, nil
}

// NextVersion computes the version following the given one, or "v1" when
// there is no prior version.
func NextVersion(latest string) (string, error) {
	if latest == "" {
		return "v1", nil
	}
	n, err := VersionNumber(latest)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("v%d", n+1), nil
}

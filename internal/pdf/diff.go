package pdf

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxDiffChars = 1000

// DiffResult holds the line-level changes between two resume versions.
// Empty strings mean no lines changed on that side.
type DiffResult struct {
	Added   string
	Removed string
}

// CompareTextDiff extracts text from both PDFs and returns the lines added
// and removed between them, each capped at 1000 characters.
func (s *Service) CompareTextDiff(ctx context.Context, oldURL, newURL string) (DiffResult, error) {
	oldText, err := s.ExtractTextFromURL(ctx, oldURL)
	if err != nil {
		return DiffResult{}, err
	}
	newText, err := s.ExtractTextFromURL(ctx, newURL)
	if err != nil {
		return DiffResult{}, err
	}
	return DiffLines(oldText, newText), nil
}

// DiffLines computes a line-mode diff between two texts.
func DiffLines(oldText, newText string) DiffResult {
	if oldText == newText {
		return DiffResult{}
	}

	// Normalize trailing newlines so the last line doesn't register as a
	// change when only lines after it differ.
	if oldText != "" && !strings.HasSuffix(oldText, "\n") {
		oldText += "\n"
	}
	if newText != "" && !strings.HasSuffix(newText, "\n") {
		newText += "\n"
	}

	dmp := diffmatchpatch.New()
	oldChars, newChars, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

	var added, removed []string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added = append(added, splitNonEmptyLines(d.Text)...)
		case diffmatchpatch.DiffDelete:
			removed = append(removed, splitNonEmptyLines(d.Text)...)
		}
	}

	return DiffResult{
		Added:   capDiff(strings.Join(added, "\n")),
		Removed: capDiff(strings.Join(removed, "\n")),
	}
}

func splitNonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func capDiff(text string) string {
	if len(text) <= maxDiffChars {
		return text
	}
	// Byte index; back up so a multi-byte rune is never split.
	cut := maxDiffChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "...\n(truncated)"
}

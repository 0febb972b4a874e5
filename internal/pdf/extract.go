package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractTextFromURL downloads a PDF and returns its plain text, trimmed.
func (s *Service) ExtractTextFromURL(ctx context.Context, url string) (string, error) {
	data, err := s.download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download pdf url=%s: %w", url, err)
	}
	text, err := ExtractText(data)
	if err != nil {
		return "", fmt.Errorf("extract text url=%s: %w", url, err)
	}
	return text, nil
}

// ExtractText pulls plain text from in-memory PDF bytes.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// CleanResumeText normalizes extracted text for AI analysis: trims each
// line, drops blank lines and collapses runs of newlines.
func CleanResumeText(text string) string {
	if text == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	cleaned := strings.Join(lines, "\n")
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return cleaned
}

var resumeIndicators = []string{
	"experience", "education", "skills", "work", "employment",
	"university", "college", "degree", "resume", "cv",
	"email", "phone", "contact", "objective", "summary",
}

// ValidateResumeContent reports whether extracted text looks like a
// resume: at least 100 characters and three common resume keywords.
func ValidateResumeContent(text string) bool {
	if len(text) < 100 {
		return false
	}
	lower := strings.ToLower(text)
	found := 0
	for _, indicator := range resumeIndicators {
		if strings.Contains(lower, indicator) {
			found++
		}
	}
	return found >= 3
}

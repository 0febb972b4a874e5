package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ledongthuc/pdf"

	"resuralph/internal/discord"
)

const maxPDFBytes = 10 * 1024 * 1024

// ValidationError carries a user-facing message naming the violated
// constraint. Handlers surface it verbatim; all other errors become a
// generic reply.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Service downloads and inspects resume PDFs.
type Service struct {
	HTTPClient *http.Client
}

// NewService constructs a Service with the default download timeout.
func NewService() *Service {
	return &Service{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
}

// FetchAndValidate checks the attachment metadata, downloads the file and
// verifies it parses as a PDF with at least one page. Metadata checks run
// before any network call. Returns the file bytes on success; failures are
// *ValidationError values with user-facing messages.
func (s *Service) FetchAndValidate(ctx context.Context, att discord.Attachment) ([]byte, error) {
	if att.ContentType != "application/pdf" {
		got := att.ContentType
		if got == "" {
			got = "unknown"
		}
		return nil, validationErrorf("Invalid file type. Expected PDF, got %s", got)
	}
	if att.Size > maxPDFBytes {
		return nil, validationErrorf("File too large. Maximum size is 10MB, got %.1fMB", att.SizeMB())
	}
	if att.Size == 0 {
		return nil, validationErrorf("File appears to be empty")
	}
	if att.URL == "" {
		return nil, validationErrorf("No download URL provided")
	}

	data, err := s.download(ctx, att.URL)
	if err != nil {
		return nil, validationErrorf("Failed to download file: %v", err)
	}

	pages, err := pageCount(data)
	if err != nil {
		return nil, validationErrorf("Invalid PDF file: %v", err)
	}
	if pages == 0 {
		return nil, validationErrorf("PDF appears to have no pages")
	}

	return data, nil
}

func (s *Service) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func pageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

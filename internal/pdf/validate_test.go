package pdf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resuralph/internal/discord"
)

func TestFetchAndValidateRejectsContentType(t *testing.T) {
	s := NewService()
	att := discord.Attachment{
		ContentType: "image/png",
		Size:        1024,
		URL:         "https://cdn.example/file.png",
	}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if err.Error() != "Invalid file type. Expected PDF, got image/png" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFetchAndValidateRejectsOversize(t *testing.T) {
	s := NewService()
	att := discord.Attachment{
		ContentType: "application/pdf",
		Size:        12 * 1024 * 1024,
		URL:         "https://cdn.example/file.pdf",
	}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Error() != "File too large. Maximum size is 10MB, got 12.0MB" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFetchAndValidateRejectsEmpty(t *testing.T) {
	s := NewService()
	att := discord.Attachment{ContentType: "application/pdf", Size: 0, URL: "https://cdn.example/file.pdf"}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil || err.Error() != "File appears to be empty" {
		t.Fatalf("err = %v", err)
	}
}

func TestFetchAndValidateRejectsMissingURL(t *testing.T) {
	s := NewService()
	att := discord.Attachment{ContentType: "application/pdf", Size: 1024}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil || err.Error() != "No download URL provided" {
		t.Fatalf("err = %v", err)
	}
}

func TestFetchAndValidateRejectsNonPDFBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a pdf"))
	}))
	defer srv.Close()

	s := NewService()
	att := discord.Attachment{ContentType: "application/pdf", Size: 17, URL: srv.URL}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "Invalid PDF file:") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFetchAndValidateRejectsDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewService()
	att := discord.Attachment{ContentType: "application/pdf", Size: 1024, URL: srv.URL}

	_, err := s.FetchAndValidate(context.Background(), att)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "Failed to download file:") {
		t.Errorf("message = %q", err.Error())
	}
}

package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFollowupSend(t *testing.T) {
	var gotPath string
	var gotBody ResponseData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFollowupClientWithBaseURL(srv.URL)
	ok := c.Send(context.Background(), "app123", "tok456", ResponseData{Content: "done"})
	if !ok {
		t.Fatal("Send returned false")
	}
	if gotPath != "/webhooks/app123/tok456" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Content != "done" {
		t.Errorf("content = %q", gotBody.Content)
	}
}

func TestFollowupSendFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewFollowupClientWithBaseURL(srv.URL)
	if c.Send(context.Background(), "app", "tok", ResponseData{Content: "x"}) {
		t.Error("Send returned true on 400")
	}
}

func TestFollowupSendConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewFollowupClientWithBaseURL(srv.URL)
	if c.Send(context.Background(), "app", "tok", ResponseData{Content: "x"}) {
		t.Error("Send returned true with server down")
	}
}

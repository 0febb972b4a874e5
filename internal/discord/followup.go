package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resuralph/internal/shared/telemetry"
)

const defaultWebhookBaseURL = "https://discord.com/api/v10"

// FollowupClient delivers deferred command results through the interaction's
// follow-up webhook. The webhook URL is derived from the application ID and
// the interaction token, which Discord keeps valid for about 15 minutes.
type FollowupClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFollowupClient constructs a follow-up webhook client.
func NewFollowupClient() *FollowupClient {
	return &FollowupClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultWebhookBaseURL,
	}
}

// NewFollowupClientWithBaseURL is used by tests to point at a fake Discord.
func NewFollowupClientWithBaseURL(baseURL string) *FollowupClient {
	c := NewFollowupClient()
	c.baseURL = baseURL
	return c
}

// Send posts one follow-up message. It returns false on any failure; the
// caller decides whether to attempt an error follow-up.
func (f *FollowupClient) Send(ctx context.Context, applicationID, token string, data ResponseData) bool {
	url := fmt.Sprintf("%s/webhooks/%s/%s", f.baseURL, applicationID, token)

	payload, err := json.Marshal(data)
	if err != nil {
		telemetry.Error("discord.followup.marshal_failed", map[string]any{"error": err.Error()})
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		telemetry.Error("discord.followup.request_failed", map[string]any{"error": err.Error()})
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		telemetry.Error("discord.followup.send_failed", map[string]any{"error": err.Error()})
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.Error("discord.followup.send_failed", map[string]any{
			"status": resp.StatusCode,
		})
		return false
	}

	telemetry.Info("discord.followup.sent", map[string]any{
		"embeds":      len(data.Embeds),
		"content_len": len(data.Content),
	})
	return true
}

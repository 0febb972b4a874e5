package hypothesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"resuralph/internal/shared/telemetry"
)

// ViaPrefix fronts a stored resume URL so Hypothesis annotations render
// in the browser without an extension.
const ViaPrefix = "https://via.hypothes.is/"

const (
	defaultBaseURL = "https://api.hypothes.is/api"
	defaultGroup   = "__world__"

	// bulkSpacing throttles bulk annotation creation to stay under the
	// Hypothesis API rate limit.
	bulkSpacing = 500 * time.Millisecond
)

// ViaURL wraps a document URL with the via.hypothes.is proxy.
func ViaURL(docURL string) string {
	return ViaPrefix + docURL
}

// StripViaPrefix recovers the original document URL from a via link.
func StripViaPrefix(viaURL string) string {
	if len(viaURL) > len(ViaPrefix) && viaURL[:len(ViaPrefix)] == ViaPrefix {
		return viaURL[len(ViaPrefix):]
	}
	return viaURL
}

// TextQuoteSelector anchors an annotation to an exact quote in the document.
type TextQuoteSelector struct {
	Type  string `json:"type"`
	Exact string `json:"exact"`
}

// Target ties selectors to a source document.
type Target struct {
	Source   string              `json:"source"`
	Selector []TextQuoteSelector `json:"selector,omitempty"`
}

// Annotation is the Hypothesis annotation payload and response shape.
type Annotation struct {
	ID     string   `json:"id,omitempty"`
	URI    string   `json:"uri"`
	Text   string   `json:"text"`
	User   string   `json:"user,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Group  string   `json:"group,omitempty"`
	Target []Target `json:"target,omitempty"`
}

// AuthorName extracts the plain username out of the API's
// "acct:name@hypothes.is" user identifier.
func (a Annotation) AuthorName() string {
	name := strings.TrimPrefix(a.User, "acct:")
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return name
}

// BulkResult summarizes a CreateBulk run.
type BulkResult struct {
	Created int
	Failed  int
	Total   int
}

// Client talks to the Hypothesis annotation API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sleep      func(time.Duration)
}

// NewClient builds an authenticated client from an API token.
func NewClient(apiKey string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 15 * time.Second
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		sleep:      time.Sleep,
	}
}

// NewClientWithBaseURL is for tests against a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	c.sleep = func(time.Duration) {}
	return c
}

// ValidateAnnotation checks the fields required by the API before sending.
func ValidateAnnotation(a Annotation) error {
	if a.URI == "" {
		return fmt.Errorf("annotation uri is required")
	}
	if a.Text == "" {
		return fmt.Errorf("annotation text is required")
	}
	if len(a.Target) == 0 {
		return fmt.Errorf("annotation target is required")
	}
	return nil
}

// CreateAnnotation posts one annotation and returns it with the server ID.
func (c *Client) CreateAnnotation(ctx context.Context, a Annotation) (Annotation, error) {
	if err := ValidateAnnotation(a); err != nil {
		return Annotation{}, err
	}
	if a.Group == "" {
		a.Group = defaultGroup
	}

	body, err := json.Marshal(a)
	if err != nil {
		return Annotation{}, fmt.Errorf("marshal annotation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/annotations", bytes.NewReader(body))
	if err != nil {
		return Annotation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Annotation{}, fmt.Errorf("post annotation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Annotation{}, fmt.Errorf("hypothesis create status=%d body=%s", resp.StatusCode, payload)
	}

	var created Annotation
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Annotation{}, fmt.Errorf("decode annotation response: %w", err)
	}
	return created, nil
}

// CreateBulk posts annotations one by one with spacing between requests.
// Individual failures are logged and counted, not fatal.
func (c *Client) CreateBulk(ctx context.Context, annotations []Annotation) BulkResult {
	result := BulkResult{Total: len(annotations)}
	for i, a := range annotations {
		if i > 0 {
			c.sleep(bulkSpacing)
		}
		if _, err := c.CreateAnnotation(ctx, a); err != nil {
			telemetry.Error("hypothesis.bulk_create_item", map[string]any{
				"index": i,
				"uri":   a.URI,
				"error": err.Error(),
			})
			result.Failed++
			continue
		}
		result.Created++
	}
	return result
}

// Search returns annotations on a document, oldest first, up to 100.
func (c *Client) Search(ctx context.Context, uri string) ([]Annotation, error) {
	q := url.Values{}
	q.Set("uri", uri)
	q.Set("limit", "100")
	q.Set("order", "asc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search annotations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hypothesis search status=%d body=%s", resp.StatusCode, payload)
	}

	var out struct {
		Rows []Annotation `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Rows, nil
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"resuralph/internal/llm"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

const analysisPrompt = `You are an expert resume reviewer. Analyze the resume text below and provide specific, actionable feedback.

For each piece of feedback, quote the EXACT text from the resume it applies to. The quote must appear verbatim in the resume text.

Respond with JSON in this format:
{"feedback": [{"selected_text": "exact quote from resume", "feedback_type": "improvement" or "formatting", "comment": "your specific feedback", "priority": "high", "medium" or "low"}]}

Focus on: quantifying achievements, action verbs, clarity, relevance, and formatting consistency. Provide 5-10 feedback items.`

// Client implements llm.Client against the OpenAI chat completions API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// New builds a client from an API key. Model falls back to gpt-4o-mini
// when empty.
func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 60 * time.Second
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		model:      model,
	}
}

// NewWithBaseURL is for tests against a fake server.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	c := New(apiKey, model)
	c.baseURL = baseURL
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeResume sends the resume text for analysis and parses the
// structured feedback out of the model's JSON reply.
func (c *Client) AnalyzeResume(ctx context.Context, resumeText string) ([]llm.FeedbackItem, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: resumeText},
		},
		Temperature:    0.3,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("openai status=%d body=%s", resp.StatusCode, errBody)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	var parsed struct {
		Feedback []llm.FeedbackItem `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("parse feedback json: %w", err)
	}
	return parsed.Feedback, nil
}

var _ llm.Client = (*Client)(nil)

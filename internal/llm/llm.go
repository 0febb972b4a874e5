package llm

import "context"

// FeedbackItem is one piece of resume feedback anchored to an exact quote
// from the resume text.
type FeedbackItem struct {
	SelectedText string `json:"selected_text"`
	FeedbackType string `json:"feedback_type"`
	Comment      string `json:"comment"`
	Priority     string `json:"priority"`
}

// Client produces structured feedback for resume text.
type Client interface {
	AnalyzeResume(ctx context.Context, resumeText string) ([]FeedbackItem, error)
}

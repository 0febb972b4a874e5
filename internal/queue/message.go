package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is one queued command job. The raw interaction travels with the
// job so the worker can re-run option and attachment lookups without a
// second wire format.
type Message struct {
	JobID            string          `json:"job_id"`
	CommandType      string          `json:"command_type"`
	ApplicationID    string          `json:"application_id"`
	InteractionToken string          `json:"interaction_token"`
	Interaction      json.RawMessage `json:"interaction"`
	EnqueuedAt       time.Time       `json:"enqueued_at"`
}

// Encode serializes the message for the queue body.
func (m Message) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode queue message: %w", err)
	}
	return string(b), nil
}

// Decode parses a queue body back into a Message.
func Decode(body string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return Message{}, fmt.Errorf("decode queue message: %w", err)
	}
	if m.CommandType == "" {
		return Message{}, fmt.Errorf("queue message missing command_type")
	}
	return m, nil
}

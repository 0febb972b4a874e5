package discord

import (
	"encoding/json"
	"testing"
)

func TestInteractionOptionLookups(t *testing.T) {
	payload := `{
		"type": 2,
		"application_id": "app123",
		"token": "tok",
		"member": {"user": {"id": "u1", "username": "jane"}},
		"data": {
			"name": "upload",
			"options": [
				{"name": "file", "value": "att1"},
				{"name": "verbose", "value": true}
			],
			"resolved": {
				"attachments": {
					"att1": {
						"content_type": "application/pdf",
						"size": 2048,
						"url": "https://cdn.discordapp.com/att1.pdf",
						"filename": "resume.pdf"
					}
				}
			}
		}
	}`

	var in Interaction
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if in.UserID() != "u1" {
		t.Errorf("UserID = %q", in.UserID())
	}
	if in.Username() != "jane" {
		t.Errorf("Username = %q", in.Username())
	}
	if in.CommandName() != "upload" {
		t.Errorf("CommandName = %q", in.CommandName())
	}
	if !in.BoolOption("verbose") {
		t.Error("BoolOption(verbose) = false")
	}
	if in.BoolOption("missing") {
		t.Error("BoolOption(missing) = true")
	}

	att, ok := in.ResolvedAttachment("file")
	if !ok {
		t.Fatal("attachment not resolved")
	}
	if att.Filename != "resume.pdf" || att.ContentType != "application/pdf" {
		t.Errorf("attachment = %+v", att)
	}
}

func TestInteractionNilSafety(t *testing.T) {
	var in *Interaction
	if in.UserID() != "" || in.CommandName() != "" {
		t.Error("nil interaction leaked values")
	}

	empty := &Interaction{}
	if _, ok := empty.ResolvedAttachment("file"); ok {
		t.Error("attachment resolved on empty interaction")
	}
	if _, ok := empty.StringOption("x"); ok {
		t.Error("string option found on empty interaction")
	}
}

func TestAttachmentSizeMB(t *testing.T) {
	att := Attachment{Size: 5 * 1024 * 1024}
	if got := att.SizeMB(); got != 5.0 {
		t.Errorf("SizeMB = %v", got)
	}
}

func TestResponseShapes(t *testing.T) {
	if Pong().Type != ResponsePong {
		t.Error("Pong type mismatch")
	}
	if Deferred().Type != ResponseDeferredMessage {
		t.Error("Deferred type mismatch")
	}

	msg := Message("hi")
	if msg.Type != ResponseChannelMessage || msg.Data.Content != "hi" {
		t.Errorf("Message = %+v", msg)
	}

	// Deferred responses carry no data payload.
	b, err := json.Marshal(Deferred())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"type":5}` {
		t.Errorf("deferred wire form = %s", b)
	}
}

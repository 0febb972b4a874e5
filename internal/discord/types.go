package discord

// Interaction types as defined by the Discord interactions API.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Response types.
const (
	ResponsePong            = 1
	ResponseChannelMessage  = 4
	ResponseDeferredMessage = 5
)

// Interaction is one inbound command invocation from Discord.
type Interaction struct {
	Type          int          `json:"type"`
	ApplicationID string       `json:"application_id"`
	Token         string       `json:"token"`
	Data          *CommandData `json:"data,omitempty"`
	Member        *Member      `json:"member,omitempty"`
}

// CommandData carries the invoked command name, options and resolved entities.
type CommandData struct {
	Name     string          `json:"name"`
	Options  []CommandOption `json:"options,omitempty"`
	Resolved *ResolvedData   `json:"resolved,omitempty"`
}

// CommandOption is a single name/value pair from the slash command.
type CommandOption struct {
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// ResolvedData holds entities referenced by option values.
type ResolvedData struct {
	Attachments map[string]Attachment `json:"attachments,omitempty"`
}

// Attachment is a file attached to an interaction. It lives only for the
// duration of one command invocation and is never persisted.
type Attachment struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
}

// SizeMB returns the attachment size in megabytes.
func (a Attachment) SizeMB() float64 {
	return float64(a.Size) / (1024 * 1024)
}

// Member identifies the guild member who invoked the command.
type Member struct {
	User User `json:"user"`
}

// User is a Discord user reference.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserID extracts the invoking user's ID, or "" when absent.
func (i *Interaction) UserID() string {
	if i == nil || i.Member == nil {
		return ""
	}
	return i.Member.User.ID
}

// Username extracts the invoking user's name, or "" when absent.
func (i *Interaction) Username() string {
	if i == nil || i.Member == nil {
		return ""
	}
	return i.Member.User.Username
}

// CommandName extracts the invoked command name, or "" when absent.
func (i *Interaction) CommandName() string {
	if i == nil || i.Data == nil {
		return ""
	}
	return i.Data.Name
}

// StringOption returns the value of a string option by name.
func (i *Interaction) StringOption(name string) (string, bool) {
	if i == nil || i.Data == nil {
		return "", false
	}
	for _, opt := range i.Data.Options {
		if opt.Name != name {
			continue
		}
		if s, ok := opt.Value.(string); ok {
			return s, true
		}
		return "", false
	}
	return "", false
}

// BoolOption returns the value of a boolean option by name, defaulting to false.
func (i *Interaction) BoolOption(name string) bool {
	if i == nil || i.Data == nil {
		return false
	}
	for _, opt := range i.Data.Options {
		if opt.Name != name {
			continue
		}
		if b, ok := opt.Value.(bool); ok {
			return b
		}
		return false
	}
	return false
}

// ResolvedAttachment looks up the attachment referenced by the named option.
func (i *Interaction) ResolvedAttachment(option string) (Attachment, bool) {
	if i == nil || i.Data == nil || i.Data.Resolved == nil {
		return Attachment{}, false
	}
	id, ok := i.StringOption(option)
	if !ok || id == "" {
		return Attachment{}, false
	}
	att, ok := i.Data.Resolved.Attachments[id]
	return att, ok
}

// Response is the immediate reply envelope returned from the interactions endpoint.
type Response struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData holds the reply content: plain text or embeds, never both.
type ResponseData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Pong answers a Discord health check.
func Pong() Response {
	return Response{Type: ResponsePong}
}

// Message builds an immediate plain-content reply.
func Message(content string) Response {
	return Response{Type: ResponseChannelMessage, Data: &ResponseData{Content: content}}
}

// Embeds builds an immediate embed reply.
func Embeds(embeds ...Embed) Response {
	return Response{Type: ResponseChannelMessage, Data: &ResponseData{Embeds: embeds}}
}

// Deferred acknowledges an interaction whose result arrives via follow-up.
func Deferred() Response {
	return Response{Type: ResponseDeferredMessage}
}

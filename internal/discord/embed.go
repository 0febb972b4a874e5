package discord

// Embed colors used across the bot's replies.
const (
	ColorSuccess = 0x00ff00
	ColorError   = 0xff0000
	ColorWarning = 0xff9900
)

const embedFooter = "🤖 ResuRalph by @Lenny"

// Embed is a Discord rich embed.
type Embed struct {
	Color       int          `json:"color,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedField is one titled section of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SuccessEmbed builds a green embed with the bot footer.
func SuccessEmbed(title, description string, fields ...EmbedField) Embed {
	return Embed{
		Color:       ColorSuccess,
		Title:       "✅ " + title,
		Description: description,
		Footer:      &EmbedFooter{Text: embedFooter},
		Fields:      fields,
	}
}

// ErrorEmbed builds a red embed with the bot footer.
func ErrorEmbed(title, description string, fields ...EmbedField) Embed {
	return Embed{
		Color:       ColorError,
		Title:       "❌ " + title,
		Description: description,
		Footer:      &EmbedFooter{Text: embedFooter},
		Fields:      fields,
	}
}

// WarningEmbed builds an orange embed with the bot footer.
func WarningEmbed(title, description string, fields ...EmbedField) Embed {
	return Embed{
		Color:       ColorWarning,
		Title:       "⚠️ " + title,
		Description: description,
		Footer:      &EmbedFooter{Text: embedFooter},
		Fields:      fields,
	}
}

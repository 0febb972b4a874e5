package commands

import (
	"context"
	"fmt"

	"resuralph/internal/discord"
	"resuralph/internal/llm"
	"resuralph/internal/pdf"
	"resuralph/internal/ratelimit"
	"resuralph/internal/resumes"
	"resuralph/internal/shared/storage/object"

	"resuralph/internal/hypothesis"
)

// Result is what a handler wants sent back to the channel, either as the
// immediate interaction response or as a deferred follow-up.
type Result struct {
	Content string
	Embeds  []discord.Embed
}

// ResponseData converts the result to the Discord wire shape.
func (r Result) ResponseData() discord.ResponseData {
	return discord.ResponseData{Content: r.Content, Embeds: r.Embeds}
}

// HandlerFunc executes one slash command.
type HandlerFunc func(ctx context.Context, in *discord.Interaction) Result

// Command pairs a slash command name with its handler. Async commands get
// a deferred response and run off the request path; sync ones answer
// inline within Discord's 3 second window.
type Command struct {
	Name  string
	Async bool
	Run   HandlerFunc
}

// Deps aggregates the services handlers call into. Hypothesis and LLM may
// be nil when the corresponding API keys are not configured; handlers that
// need them reply with a not-configured notice.
type Deps struct {
	Resumes    *resumes.Store
	Objects    object.Store
	PDF        *pdf.Service
	Hypothesis *hypothesis.Client
	LLM        llm.Client
	Limiter    *ratelimit.Limiter
}

// GenericErrorMessage is the catch-all user reply when a command fails for
// a reason the user cannot act on.
const GenericErrorMessage = "An error occurred while processing your request. 😔"

const (
	msgNoResume     = "It seems you haven't uploaded a resume yet. Please use the /upload command to upload your resume."
	msgGenericError = GenericErrorMessage
)

// UnknownCommandMessage is the reply for command names with no handler.
func UnknownCommandMessage(name string) string {
	return fmt.Sprintf("Command '%s' is not implemented yet.", name)
}

func genericError() Result {
	return Result{Content: msgGenericError}
}

func errorEmbed(title, description string) Result {
	return Result{Embeds: []discord.Embed{discord.ErrorEmbed(title, description)}}
}

package commands

import (
	"context"

	"resuralph/internal/discord"
)

// Hello is a liveness check for the bot wiring.
func (d *Deps) Hello(ctx context.Context, in *discord.Interaction) Result {
	return Result{Content: "Hello there!"}
}

// Echo repeats the user's message back.
func (d *Deps) Echo(ctx context.Context, in *discord.Interaction) Result {
	msg, ok := in.StringOption("message")
	if !ok || msg == "" {
		return Result{Content: "You didn't give me anything to echo!"}
	}
	return Result{Content: "Echoing: " + msg}
}

package dispatch

import (
	"context"

	"resuralph/internal/discord"
)

// Dispatcher hands an async command off for background execution. Dispatch
// returns once the job is accepted; the result reaches the user through a
// follow-up webhook.
type Dispatcher interface {
	Dispatch(ctx context.Context, in *discord.Interaction) error
}

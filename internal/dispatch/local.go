package dispatch

import (
	"context"

	"resuralph/internal/discord"
)

// LocalDispatcher runs jobs on a goroutine in the API process. Used in dev
// and single-instance deployments where no queue is configured. Jobs get a
// fresh background context: the HTTP request that spawned them has already
// been answered with a deferred response.
type LocalDispatcher struct {
	Processor *Processor
}

// Dispatch fires the job and returns immediately.
func (d *LocalDispatcher) Dispatch(_ context.Context, in *discord.Interaction) error {
	go d.Processor.Process(context.Background(), in)
	return nil
}

var _ Dispatcher = (*LocalDispatcher)(nil)

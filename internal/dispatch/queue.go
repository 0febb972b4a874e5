package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resuralph/internal/discord"
	"resuralph/internal/queue"
	"resuralph/internal/shared/telemetry"
)

// QueueDispatcher publishes jobs to a queue for the worker process.
type QueueDispatcher struct {
	Client queue.Client
	Now    func() time.Time
}

// NewQueueDispatcher wraps a queue client.
func NewQueueDispatcher(client queue.Client) *QueueDispatcher {
	return &QueueDispatcher{Client: client, Now: time.Now}
}

// Dispatch serializes the interaction into a job message and publishes it.
func (d *QueueDispatcher) Dispatch(ctx context.Context, in *discord.Interaction) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	msg := queue.Message{
		JobID:            uuid.NewString(),
		CommandType:      in.CommandName(),
		ApplicationID:    in.ApplicationID,
		InteractionToken: in.Token,
		Interaction:      raw,
		EnqueuedAt:       d.Now(),
	}

	if err := d.Client.Send(ctx, msg); err != nil {
		return err
	}
	telemetry.Info("dispatch.enqueued", map[string]any{
		"job_id":  msg.JobID,
		"command": msg.CommandType,
	})
	return nil
}

var _ Dispatcher = (*QueueDispatcher)(nil)

package dispatch

import (
	"context"
	"fmt"
	"time"

	"resuralph/internal/commands"
	"resuralph/internal/discord"
	"resuralph/internal/shared/metrics"
	"resuralph/internal/shared/telemetry"
)

// Processor executes one dispatched command and delivers the result via a
// follow-up webhook. Both the in-process dispatcher and the queue worker
// run jobs through it.
type Processor struct {
	Registry *commands.Registry
	Followup *discord.FollowupClient
}

// Process runs the command and sends its result as a follow-up. When the
// handler panics or the follow-up delivery fails, one generic error
// follow-up is attempted; after that the job is abandoned.
func (p *Processor) Process(ctx context.Context, in *discord.Interaction) {
	name := in.CommandName()
	start := time.Now()

	cmd, ok := p.Registry.Lookup(name)
	if !ok {
		telemetry.Error("dispatch.unknown_command", map[string]any{"command": name})
		metrics.IncAsyncJob(name, "unknown")
		p.sendErrorFollowup(ctx, in, name)
		return
	}

	result, panicked := p.run(ctx, cmd, in)
	metrics.ObserveCommandDuration(time.Since(start))

	if panicked {
		metrics.IncAsyncJob(name, "panic")
		p.sendErrorFollowup(ctx, in, name)
		return
	}

	if !p.Followup.Send(ctx, in.ApplicationID, in.Token, result.ResponseData()) {
		metrics.IncAsyncJob(name, "followup_failed")
		metrics.IncFollowupFailure()
		p.sendErrorFollowup(ctx, in, name)
		return
	}

	metrics.IncAsyncJob(name, "ok")
	telemetry.Info("dispatch.complete", map[string]any{
		"command":     name,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (p *Processor) run(ctx context.Context, cmd commands.Command, in *discord.Interaction) (result commands.Result, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("dispatch.handler_panic", map[string]any{
				"command": cmd.Name, "panic": fmt.Sprint(r),
			})
			panicked = true
		}
	}()
	return cmd.Run(ctx, in), false
}

func (p *Processor) sendErrorFollowup(ctx context.Context, in *discord.Interaction, name string) {
	data := discord.ResponseData{
		Content: fmt.Sprintf("An error occurred while processing your %s. Please try again.", name),
	}
	if !p.Followup.Send(ctx, in.ApplicationID, in.Token, data) {
		metrics.IncFollowupFailure()
		telemetry.Error("dispatch.error_followup_failed", map[string]any{"command": name})
	}
}

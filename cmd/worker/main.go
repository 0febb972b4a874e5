package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resuralph/internal/bootstrap"
	"resuralph/internal/discord"
	"resuralph/internal/queue"
	"resuralph/internal/shared/config"
	"resuralph/internal/shared/storage/db"
	"resuralph/internal/shared/telemetry"
)

const (
	maxConcurrentJobs  = 4
	receiveBatchSize   = 5
	receiveWaitSeconds = 20
	receiveErrorPause  = 5 * time.Second
)

// The worker drains the command queue: receive, run through the shared
// processor, delete. Jobs in flight finish before shutdown completes.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.CommandQueueURL == "" {
		telemetry.Error("worker.missing_queue_url", nil)
		os.Exit(1)
	}

	app, err := bootstrap.BuildWithDBOptions(ctx, cfg, db.DefaultWorkerOptions())
	if err != nil {
		telemetry.Error("worker.build_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.BucketRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.BucketRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		telemetry.Error("worker.aws_config_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	client := sqs.NewFromConfig(awsCfg)

	telemetry.Info("worker.started", map[string]any{
		"queue":       cfg.CommandQueueURL,
		"concurrency": maxConcurrentJobs,
	})

	sem := make(chan struct{}, maxConcurrentJobs)
	var wg sync.WaitGroup

	for ctx.Err() == nil {
		out, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(cfg.CommandQueueURL),
			MaxNumberOfMessages: receiveBatchSize,
			WaitTimeSeconds:     receiveWaitSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
			time.Sleep(receiveErrorPause)
			continue
		}

		for _, raw := range out.Messages {
			sem <- struct{}{}
			wg.Add(1)
			go func(raw sqstypes.Message) {
				defer func() { <-sem; wg.Done() }()
				handleMessage(ctx, app, client, cfg.CommandQueueURL, raw)
			}(raw)
		}
	}

	telemetry.Info("worker.draining", nil)
	wg.Wait()
	telemetry.Info("worker.stopped", nil)
}

// handleMessage runs one queued job. Undecodable messages are deleted as
// poison; decodable ones are deleted after processing since the processor
// already handles delivery failures with an error follow-up.
func handleMessage(ctx context.Context, app *bootstrap.App, client *sqs.Client, queueURL string, raw sqstypes.Message) {
	body := aws.ToString(raw.Body)

	msg, err := queue.Decode(body)
	if err != nil {
		telemetry.Error("worker.decode_failed", map[string]any{"error": err.Error()})
		deleteMessage(ctx, client, queueURL, raw)
		return
	}

	var in discord.Interaction
	if err := json.Unmarshal(msg.Interaction, &in); err != nil {
		telemetry.Error("worker.bad_interaction", map[string]any{
			"job_id": msg.JobID, "error": err.Error(),
		})
		deleteMessage(ctx, client, queueURL, raw)
		return
	}
	if in.ApplicationID == "" {
		in.ApplicationID = msg.ApplicationID
	}
	if in.Token == "" {
		in.Token = msg.InteractionToken
	}

	telemetry.Info("worker.job_started", map[string]any{
		"job_id":  msg.JobID,
		"command": msg.CommandType,
	})
	app.Processor.Process(ctx, &in)
	deleteMessage(ctx, client, queueURL, raw)
}

func deleteMessage(ctx context.Context, client *sqs.Client, queueURL string, raw sqstypes.Message) {
	_, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: raw.ReceiptHandle,
	})
	if err != nil {
		telemetry.Error("worker.delete_failed", map[string]any{"error": err.Error()})
	}
}

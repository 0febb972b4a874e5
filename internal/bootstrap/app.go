package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"resuralph/internal/commands"
	"resuralph/internal/discord"
	"resuralph/internal/dispatch"
	"resuralph/internal/hypothesis"
	"resuralph/internal/llm"
	"resuralph/internal/llm/openai"
	"resuralph/internal/pdf"
	"resuralph/internal/queue"
	"resuralph/internal/ratelimit"
	"resuralph/internal/resumes"
	"resuralph/internal/server"
	"resuralph/internal/shared/config"
	"resuralph/internal/shared/storage/db"
	"resuralph/internal/shared/storage/object"
	objectlocal "resuralph/internal/shared/storage/object/local"
	objects3 "resuralph/internal/shared/storage/object/s3"
	"resuralph/internal/shared/telemetry"
)

// App holds the wired application. Both the API and the worker build one;
// the API serves Router, the worker runs jobs through Processor.
type App struct {
	Config     config.Config
	DB         *sql.DB
	Resumes    *resumes.Store
	Objects    object.Store
	Registry   *commands.Registry
	Dispatcher dispatch.Dispatcher
	Processor  *dispatch.Processor
	Router     *gin.Engine
}

// Build wires every component from configuration using the server's
// database pool defaults. Dev-like environments fall back to in-memory and
// local-filesystem storage when Postgres or S3 is not configured;
// production requires both.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	return BuildWithDBOptions(ctx, cfg, db.DefaultServerOptions())
}

// BuildWithDBOptions is Build with explicit pool sizing; the worker uses
// it to keep a smaller connection footprint.
func BuildWithDBOptions(ctx context.Context, cfg config.Config, dbOpts db.Options) (*App, error) {
	repo, dbConn, err := buildRepo(ctx, cfg, dbOpts)
	if err != nil {
		return nil, err
	}

	store := resumes.NewStore(repo)
	limiter := ratelimit.NewLimiter(store)

	objects, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var hypClient *hypothesis.Client
	if cfg.HypothesisAPIKey != "" {
		hypClient = hypothesis.NewClient(cfg.HypothesisAPIKey)
	} else {
		telemetry.Warn("bootstrap.hypothesis_disabled", map[string]any{"reason": "HYPOTHESIS_API_KEY not set"})
	}

	var llmClient llm.Client
	if cfg.OpenAIAPIKey != "" {
		llmClient = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		telemetry.Warn("bootstrap.llm_disabled", map[string]any{"reason": "OPENAI_API_KEY not set"})
	}

	deps := &commands.Deps{
		Resumes:    store,
		Objects:    objects,
		PDF:        pdf.NewService(),
		Hypothesis: hypClient,
		LLM:        llmClient,
		Limiter:    limiter,
	}
	registry := commands.NewRegistry(deps)
	telemetry.Info("bootstrap.commands_registered", map[string]any{
		"commands": registry.Names(),
	})

	processor := &dispatch.Processor{
		Registry: registry,
		Followup: discord.NewFollowupClient(),
	}

	dispatcher, err := buildDispatcher(ctx, cfg, processor)
	if err != nil {
		return nil, err
	}

	srv := &server.Server{Registry: registry, Dispatcher: dispatcher}

	return &App{
		Config:     cfg,
		DB:         dbConn,
		Resumes:    store,
		Objects:    objects,
		Registry:   registry,
		Dispatcher: dispatcher,
		Processor:  processor,
		Router:     server.NewRouter(cfg, srv),
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildRepo(ctx context.Context, cfg config.Config, dbOpts db.Options) (resumes.Repo, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if !cfg.IsDevLike() {
			return nil, nil, fmt.Errorf("DATABASE_URL is required in %s", cfg.Env)
		}
		telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL not set"})
		return resumes.NewMemoryRepo(), nil, nil
	}

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(dbOpts))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": err.Error()})
			return resumes.NewMemoryRepo(), nil, nil
		}
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return &resumes.PGRepo{DB: dbConn}, dbConn, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	if cfg.S3BucketName != "" {
		store, err := objects3.New(ctx, cfg.BucketRegion, cfg.S3BucketName)
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
		return store, nil
	}
	if !cfg.IsDevLike() {
		return nil, fmt.Errorf("S3_BUCKET_NAME is required in %s", cfg.Env)
	}
	telemetry.Warn("bootstrap.local_object_store", map[string]any{"dir": cfg.LocalStoreDir})
	return objectlocal.New(cfg.LocalStoreDir), nil
}

func buildDispatcher(ctx context.Context, cfg config.Config, processor *dispatch.Processor) (dispatch.Dispatcher, error) {
	if cfg.DispatchMode == "queue" {
		if cfg.CommandQueueURL == "" {
			return nil, fmt.Errorf("COMMAND_QUEUE_URL is required when DISPATCH_MODE=queue")
		}
		client, err := queue.NewSQSClient(ctx, cfg.BucketRegion, cfg.CommandQueueURL)
		if err != nil {
			return nil, fmt.Errorf("build sqs client: %w", err)
		}
		return dispatch.NewQueueDispatcher(client), nil
	}
	return &dispatch.LocalDispatcher{Processor: processor}, nil
}

package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	DiscordPublicKey string
	BucketRegion     string
	S3BucketName     string
	LocalStoreDir    string
	DatabaseURL      string
	OpenAIAPIKey     string
	OpenAIModel      string
	HypothesisAPIKey string
	CommandQueueURL  string
	DispatchMode     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		DiscordPublicKey: getEnv("DISCORD_PUBLIC_KEY", ""),
		BucketRegion:     getEnv("BUCKET_REGION", ""),
		S3BucketName:     getEnv("S3_BUCKET_NAME", ""),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		DatabaseURL:      dbURL,
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		HypothesisAPIKey: getEnv("HYPOTHESIS_API_KEY", ""),
		CommandQueueURL:  getEnv("COMMAND_QUEUE_URL", ""),
		DispatchMode:     normalizeDispatchMode(getEnv("DISPATCH_MODE", "local")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeDispatchMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "queue", "sqs":
		return "queue"
	default:
		return "local"
	}
}

// IsDevLike reports whether the environment tolerates missing external services.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

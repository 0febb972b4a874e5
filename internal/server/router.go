package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resuralph/internal/commands"
	"resuralph/internal/discord"
	"resuralph/internal/dispatch"
	"resuralph/internal/shared/config"
	"resuralph/internal/shared/metrics"
	"resuralph/internal/shared/server/middleware"
	"resuralph/internal/shared/telemetry"
)

// Server handles the Discord interactions endpoint.
type Server struct {
	Registry   *commands.Registry
	Dispatcher dispatch.Dispatcher
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg config.Config, s *Server) *gin.Engine {
	if !cfg.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(func(c *gin.Context) {
			// Discord treats non-2xx as a failed interaction; answer with a
			// user-facing message instead.
			c.JSON(http.StatusOK, discord.Message(commands.GenericErrorMessage))
		}),
		middleware.RateLimit(25, 50),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/interactions", discord.VerifySignature(cfg.DiscordPublicKey), s.HandleInteraction)

	return r
}

// HandleInteraction is the single entrypoint for Discord webhook calls:
// PING checks, sync commands answered inline, async commands deferred and
// dispatched.
func (s *Server) HandleInteraction(c *gin.Context) {
	var in discord.Interaction
	if err := c.ShouldBindJSON(&in); err != nil {
		telemetry.Error("interaction.bad_payload", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction payload"})
		return
	}

	if in.Type == discord.InteractionPing {
		c.JSON(http.StatusOK, discord.Pong())
		return
	}

	name := in.CommandName()
	if name == "" {
		metrics.IncInteraction("unknown", "malformed")
		c.JSON(http.StatusOK, discord.Message(commands.GenericErrorMessage))
		return
	}

	cmd, ok := s.Registry.Lookup(name)
	if !ok {
		metrics.IncInteraction(name, "unknown")
		c.JSON(http.StatusOK, discord.Message(commands.UnknownCommandMessage(name)))
		return
	}

	if cmd.Async {
		s.dispatchAsync(c, cmd, &in)
		return
	}

	start := time.Now()
	result := cmd.Run(c.Request.Context(), &in)
	metrics.ObserveCommandDuration(time.Since(start))
	metrics.IncInteraction(name, "ok")
	telemetry.Info("interaction.complete", map[string]any{
		"command":     name,
		"mode":        "sync",
		"outcome":     "ok",
		"user_id":     in.UserID(),
		"username":    in.Username(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	data := result.ResponseData()
	c.JSON(http.StatusOK, discord.Response{Type: discord.ResponseChannelMessage, Data: &data})
}

func (s *Server) dispatchAsync(c *gin.Context, cmd commands.Command, in *discord.Interaction) {
	if in.ApplicationID == "" || in.Token == "" {
		metrics.IncInteraction(cmd.Name, "malformed")
		c.JSON(http.StatusOK, discord.Embeds(
			discord.ErrorEmbed("Invalid Request", "Missing required Discord interaction data."),
		))
		return
	}

	if err := s.Dispatcher.Dispatch(c.Request.Context(), in); err != nil {
		telemetry.Error("interaction.dispatch_failed", map[string]any{
			"command": cmd.Name, "error": err.Error(),
		})
		metrics.IncInteraction(cmd.Name, "dispatch_failed")
		c.JSON(http.StatusOK, discord.Message(commands.GenericErrorMessage))
		return
	}

	metrics.IncInteraction(cmd.Name, "deferred")
	telemetry.Info("interaction.complete", map[string]any{
		"command": cmd.Name,
		"mode":    "deferred",
		"outcome": "deferred",
		"user_id": in.UserID(),
	})
	c.JSON(http.StatusOK, discord.Deferred())
}

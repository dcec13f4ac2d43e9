package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tickethawk.app/ingest/common/id"
	"tickethawk.app/ingest/common/llm"
	"tickethawk.app/ingest/common/logger"
	"tickethawk.app/ingest/common/otel"
	"tickethawk.app/ingest/core/config"
	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/http/middleware"
	httprouter "tickethawk.app/ingest/internal/http/router"
	"tickethawk.app/ingest/internal/queue"
	"tickethawk.app/ingest/internal/service"
	"tickethawk.app/ingest/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "ingest starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, db.Config{
		DSN:      cfg.DB.DSN,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if err := database.Bootstrap(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to apply schema", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Pool())
	if err := stores.SeedRegistry(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to seed keyword registry", "error", err)
		os.Exit(1)
	}

	feed := setupLiveFeed(ctx, cfg.LiveFeed)
	defer feed.Close()

	var llmClient llm.Client
	if cfg.Suggest.APIKey != "" {
		llmClient, err = llm.New(llm.Config{
			APIKey:  cfg.Suggest.APIKey,
			BaseURL: cfg.Suggest.BaseURL,
			Model:   cfg.Suggest.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to initialize llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "keyword suggestion enabled", "model", llmClient.Model())
	} else {
		slog.InfoContext(ctx, "keyword suggestion disabled (no api key configured)")
	}

	services := service.NewServices(stores, service.NewTxRunner(database), feed, llmClient, slog.Default())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupLiveFeed connects the optional Redis live feed. Missing configuration
// or an unreachable Redis degrades to a no-op producer rather than blocking
// ingestion.
func setupLiveFeed(ctx context.Context, cfg config.LiveFeedConfig) queue.Producer {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "live feed disabled (no redis url configured)")
		return queue.NopProducer{}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.WarnContext(ctx, "invalid redis url, live feed disabled", "error", err)
		return queue.NopProducer{}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		slog.WarnContext(ctx, "redis unreachable, live feed disabled", "error", err)
		return queue.NopProducer{}
	}

	slog.InfoContext(ctx, "live feed connected", "stream", cfg.Stream)
	return queue.NewRedisProducer(client, cfg.Stream, slog.Default())
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.DashboardURL))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		VerifyToken: cfg.VerifyToken,
	})

	return router
}

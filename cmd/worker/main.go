// File: cmd/worker/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/config"
	aiAdapters "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/adapters/ai"
	mediaAdapters "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/adapters/media"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/api/apiv1"
	pg "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/db/postgres"
	httpapi "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/http"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/logging"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/metrics"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/mq"
	red "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/redis"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/worker"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/usecase"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	// ---- Postgres ----
	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()
	go pg.StartPoolStatsReporter(ctx, pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)
	resultStore := red.NewResultStore(redisClient, cfg.Redis.ResultTTL)

	// ---- RabbitMQ ----
	broker, err := mq.NewBroker(&cfg.RabbitMQ, logger)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer broker.Close()

	// ---- Repositories ----
	assessmentRepo := pg.NewPostgresAssessmentRepo(pool)
	editorRepo := pg.NewPostgresEditorRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	gemini, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.MaxOutputTokens)
	if err != nil {
		log.Fatalf("gemini adapter: %v", err)
	}
	downloader := mediaAdapters.NewHTTPDownloader(cfg.Worker.DownloadTimeout)

	// ---- Use case ----
	assessmentUC := usecase.NewAssessmentUseCase(
		assessmentRepo, editorRepo, downloader, gemini, tm,
		cfg.AI.PollInterval, cfg.AI.PollTimeout, logger,
	)

	// ---- Worker pool + queue consumer ----
	wp := worker.NewPool(cfg.Worker.Count, logger)
	wp.Start(ctx)
	consumer := mq.NewConsumer(broker, wp, assessmentUC, locker, resultStore, cfg.Worker.LockTTL, logger)
	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("consumer: %v", err)
	}

	// ---- HTTP ops server ----
	publisher := mq.NewPublisher(broker)
	apiSrv := apiv1.NewServer(assessmentRepo, resultStore, publisher, logger)
	srv := httpapi.NewServer(cfg, apiSrv, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	logger.Info().
		Int("workers", cfg.Worker.Count).
		Str("queue", cfg.RabbitMQ.Queue).
		Str("model", cfg.AI.Model).
		Msg("assessment worker up")

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case amqpErr := <-broker.NotifyClose():
		logger.Error().Err(amqpErr).Msg("rabbitmq connection lost")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	// In-flight jobs finish before the pool lets go.
	wp.Stop()
	logger.Info().Msg("worker stopped")
}

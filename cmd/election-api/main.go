// Election API — REST API над кандидатами, партиями, избирателями и голосами.
//
// При старте:
//   - применяет схему БД (CREATE TABLE IF NOT EXISTS)
//   - при SEED_DATA=true заполняет пустую БД демонстрационными данными
//   - при EVENTS_ENABLED=true публикует события об изменениях в RabbitMQ
//
// Без RabbitMQ API продолжает работать, события не публикуются.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaiso/Election/internal/api"
	"github.com/shaiso/Election/internal/config"
	"github.com/shaiso/Election/internal/mq"
	"github.com/shaiso/Election/internal/repo"
	"github.com/shaiso/Election/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		telemetry.SetupLogger("election-api", telemetry.LogOptions{}).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Инициализируем structured logging
	logger := telemetry.SetupLogger("election-api", telemetry.LogOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting election-api")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Подключаемся к базе данных
	pool, err := repo.NewPool(ctx, repo.PoolConfig{DSN: cfg.DBURL, MaxConns: cfg.DBMaxConns})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := repo.Migrate(ctx, pool); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}
	if cfg.SeedData {
		if err := repo.Seed(ctx, pool); err != nil {
			logger.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
		logger.Info("seed data checked")
	}

	// RabbitMQ (опционально)
	var publisher api.EventPublisher
	if cfg.EventsEnabled {
		mqConn, err := mq.NewConnection(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ not available, entity change events disabled", "error", err)
		} else {
			defer mqConn.Close()
			if err := mq.SetupTopology(ctx, mqConn); err != nil {
				logger.Warn("failed to setup topology", "error", err)
			}
			publisher = mq.NewPublisher(mqConn, logger)
			logger.Info("RabbitMQ connected")
		}
	}

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		Candidates: repo.NewCandidateRepo(pool),
		Parties:    repo.NewPartyRepo(pool),
		Voters:     repo.NewVoterRepo(pool),
		Votes:      repo.NewVoteRepo(pool),
		Publisher:  publisher,
		Health:     pool.Ping,
		Logger:     logger,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:              cfg.APIAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}

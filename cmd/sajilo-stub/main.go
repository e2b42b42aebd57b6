// sajilo-stub runs the development stand-in for the SajiloKaam backend so the
// CLI and the client core have something local to talk to.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sajilokaam/client-core/internal/infrastructure/config"
	"github.com/sajilokaam/client-core/internal/stubserver"
	"github.com/sajilokaam/client-core/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo stubserver.UserRepository
	if cfg.Stub.InMemory {
		repo = stubserver.NewMemoryUserRepository()
	} else {
		client, db, err := stubserver.ConnectMongo(ctx, cfg.Stub.Mongo.URI, cfg.Stub.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		mongoRepo := stubserver.NewMongoUserRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		repo = mongoRepo
	}

	e := stubserver.New(stubserver.Options{
		JWTSecret:     cfg.Stub.JWTSecret,
		TokenTTL:      cfg.Stub.TokenTTL,
		Repo:          repo,
		Log:           log,
		EnableMetrics: true,
	})

	go func() {
		addr := ":" + cfg.Stub.Port
		log.Info().Str("addr", addr).Msg("stub backend listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

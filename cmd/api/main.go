package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apdc/auth-api/internal/api"
	"github.com/apdc/auth-api/internal/api/handler"
	"github.com/apdc/auth-api/internal/core/ports"
	"github.com/apdc/auth-api/internal/core/service"
	"github.com/apdc/auth-api/internal/core/token"
	"github.com/apdc/auth-api/internal/infrastructure/config"
	mongodir "github.com/apdc/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/apdc/auth-api/internal/infrastructure/db/redis"
	"github.com/apdc/auth-api/internal/infrastructure/store/memory"
	"github.com/apdc/auth-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	signer, err := token.New(token.Config{
		Family:   token.Family(strings.ToUpper(cfg.Session.Algorithm)),
		Strength: cfg.Session.Strength,
		Secret:   cfg.Session.Secret,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("signing configuration rejected")
	}
	if signer.Asymmetric() {
		// Key pairs are regenerated per process: every restart
		// invalidates previously issued sessions in asymmetric modes.
		log.Warn().
			Str("algorithm", signer.Algorithm()).
			Msg("fresh key pair generated; sessions issued before this start are no longer valid")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readiness := map[string]handler.DependencyCheck{}

	var directory ports.UserDirectory
	switch strings.ToLower(cfg.Store.Backend) {
	case "memory":
		directory = memory.NewDirectory()
	case "mongo":
		client, db, err := mongodir.Connect(ctx, mongodir.Config{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		dir := mongodir.NewUserDirectory(db)
		if err := dir.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		directory = dir
		readiness["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("unknown store backend")
	}

	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer func() {
			_ = rdb.Close()
		}()

		limiter = redisdb.NewAttemptLimiter(rdb, cfg.Redis.MaxAttempts, cfg.Redis.AttemptWindow)
		readiness["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	authService := service.NewSessionService(directory, signer, token.NewCodec(cfg.Session.TTL), limiter, log)

	e := api.NewRouter(api.RouterConfig{
		Auth:       authService,
		SessionTTL: cfg.Session.TTL,
		Readiness:  readiness,
		Log:        log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("algorithm", signer.Algorithm()).
			Str("store", cfg.Store.Backend).
			Msg("auth API listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdeck/task-system/internal/api"
	"github.com/taskdeck/task-system/internal/api/handler"
	mongodb "github.com/taskdeck/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdeck/task-system/internal/infrastructure/db/redis"
	"github.com/taskdeck/task-system/internal/pkg/config"
	"github.com/taskdeck/task-system/pkg/dateutil"
	"github.com/taskdeck/task-system/pkg/logger"
)

// @title        taskdeck task-system API
// @version      1.0
// @description  Single-user task tracker: accounts, sessions, tasks, and the filtered agenda view.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Calendar:  dateutil.New(loc),
		Logger:    log,
	}

	switch cfg.StorageDriver {
	case "redis":
		client, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer func() { _ = client.Close() }()

		store := redisdb.NewStore(client)
		deps.Accounts = store
		deps.Sessions = store
		deps.Tasks = store
		deps.Checks = map[string]handler.PingFunc{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}

	case "mongo":
		client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		deps.Accounts = mongodb.NewAccountRepository(db)
		deps.Sessions = mongodb.NewSessionStore(db)
		deps.Tasks = mongodb.NewTaskStore(db)
		deps.Checks = map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("driver", cfg.StorageDriver).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

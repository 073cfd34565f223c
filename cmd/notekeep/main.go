// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpserver "notekeep/internal/notes/adapters/http"
	kvadapter "notekeep/internal/notes/adapters/kv"
	"notekeep/internal/notes/adapters/postgres"
	redisadapter "notekeep/internal/notes/adapters/redis"
	"notekeep/internal/notes/app"
	"notekeep/internal/notes/config"
	"notekeep/internal/notes/db"
	"notekeep/internal/notes/ports/repositories"
	redisdb "notekeep/pkg/db/redis"
	"notekeep/pkg/logger"
	"notekeep/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEKEEP_LOGGER_MODE"
	EnvLoggerLevel = "NOTEKEEP_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notekeep service started"
	LogServiceShutdownDone = "notekeep service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing storage backend"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage_backend", cfg.Storage.Backend),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage, zap.String("backend", cfg.Storage.Backend))

		var (
			noteRepo    repositories.NoteRepository
			historyRepo repositories.HistoryRepository
			closeHooks  []func(context.Context) error
		)

		if cfg.Storage.IsRemote() {
			database, err := db.New(ctx, &cfg.Postgres, cfg.Storage.MigrationsPath)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}

			repoFactory := postgres.NewRepositoryFactory(database.Pool(), cfg.Storage.GetRemoteTimeout())
			noteRepo = repoFactory.NoteRepository()
			historyRepo = repoFactory.HistoryRepository()

			closeHooks = append(closeHooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			})
		} else {
			redisClient, err := redisdb.NewClient(cfg.Redis.ToClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}

			store := redisadapter.NewKV(redisClient.RawClient())
			noteRepo = kvadapter.NewNoteRepository(store, cfg.Storage.NotesKey)
			historyRepo = kvadapter.NewHistoryRepository(store, cfg.Storage.HistoryKey)

			closeHooks = append(closeHooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			})
		}

		log.Info(ctx, LogInitUseCases)
		noteUseCase := app.NewNoteUseCase(noteRepo)
		historyUseCase := app.NewHistoryUseCase(historyRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New()

		httpserver.SetupRouter(fiberApp, noteUseCase, historyUseCase)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks := append([]func(context.Context) error{
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
		}, closeHooks...)

		shutdown.Wait(cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

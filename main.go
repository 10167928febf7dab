package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picklego-app/internal/config"
	"picklego-app/internal/matches"
	"picklego-app/internal/players"
	"picklego-app/internal/store"
	"picklego-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	logger := cfg.NewLogger()
	log.SetDefault(logger)

	appStore, closer := openStore(cfg, logger)
	if closer != nil {
		defer closer.Close()
	}

	directory := players.NewDirectory(appStore, logger.WithPrefix("players"))
	service := matches.NewService(appStore, directory, logger.WithPrefix("matches"), matches.Options{
		Latency: cfg.SimulatedLatency,
	})
	server := web.NewServer(service, logger.WithPrefix("http"), web.Options{
		DefaultUserID: cfg.DefaultUserID,
		RateLimit:     rate.Limit(cfg.RateLimitRPS),
		RateBurst:     cfg.RateLimitBurst,
	})
	handler := server.Routes()

	if config.InLambda() {
		logger.Info("Starting in Lambda mode")
		adapter := httpadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// openStore picks Postgres, then SQLite, then the in-memory store. The returned
// closer is nil for the memory store.
func openStore(cfg config.Config, logger *log.Logger) (store.Store, io.Closer) {
	switch {
	case cfg.PostgresDSN != "":
		pgStore, err := store.NewPostgresStore(cfg.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.PostgresMigrationsDir,
		})
		if err != nil {
			logger.Fatal("Postgres store", "error", err)
		}
		logger.Info("Using Postgres store")
		return pgStore, pgStore
	case cfg.DBPath != "":
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath, store.SQLiteOptions{
			MigrationsDir: cfg.DBMigrationsDir,
		})
		if err != nil {
			logger.Fatal("SQLite store", "error", err)
		}
		logger.Info("Using SQLite store", "path", cfg.DBPath)
		return sqliteStore, sqliteStore
	}
	logger.Info("Using in-memory store", "seed", !cfg.IsProd())
	return store.NewMemoryStore(store.MemoryOptions{Seed: !cfg.IsProd()}), nil
}

package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/arcana-go/internal/adapters/decks"
	httpadapter "github.com/randomtoy/arcana-go/internal/adapters/http"
	"github.com/randomtoy/arcana-go/internal/adapters/llm/openrouter"
	"github.com/randomtoy/arcana-go/internal/adapters/storage"
	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/cache"
	"github.com/randomtoy/arcana-go/internal/config"
	"github.com/randomtoy/arcana-go/internal/ports"
	"github.com/randomtoy/arcana-go/internal/synthesis"
)

// stdRNG delegates to math/rand (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.Intn(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := decks.NewEmbeddedStore()

	var interpreter ports.Interpreter
	switch cfg.Interpreter {
	case config.InterpreterOpenRouter:
		interpreter = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		)
	default:
		interpreter = synthesis.New(stdRNG{})
	}

	readingSvc := app.NewReadingService(
		store, store, interpreter,
		cache.NewLRU(cfg.CacheSize),
		db, stdRNG{},
	)
	journalSvc := app.NewJournalService(db, db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(readingSvc, journalSvc)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "interpreter", cfg.Interpreter)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	readingSvc.EndSession()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nidhogg/assessrec/internal/api"
	"github.com/nidhogg/assessrec/internal/catalog"
	"github.com/nidhogg/assessrec/internal/config"
	"github.com/nidhogg/assessrec/internal/embedding"
	"github.com/nidhogg/assessrec/internal/fetch"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.LogLevel)
	defer logger.Sync()

	logger.Info("Starting assessment recommender...")

	provider, err := embedding.New(embedding.Config{
		Provider:  cfg.Embedding.Provider,
		Endpoint:  cfg.Embedding.Endpoint,
		Model:     cfg.Embedding.Model,
		APIKey:    cfg.Embedding.APIKey,
		Dimension: cfg.Embedding.Dimension,
		TimeoutMS: cfg.Embedding.TimeoutMS,
	})
	if err != nil {
		logger.Fatal("failed to build embedding provider", zap.Error(err))
	}

	items := catalog.Builtin()
	if cfg.Catalog.Path != "" {
		items, err = catalog.ReadFile(cfg.Catalog.Path)
		if err != nil {
			logger.Fatal("failed to read catalog file", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		}
		logger.Info("Catalog loaded from file", zap.String("path", cfg.Catalog.Path), zap.Int("items", len(items)))
	}

	// Embedding the catalog must succeed before we serve anything; a
	// partial catalog is worse than no server.
	cat, err := catalog.Load(context.Background(), items, provider)
	if err != nil {
		logger.Fatal("failed to embed catalog", zap.Error(err))
	}
	logger.Info("Catalog embedded",
		zap.Int("items", cat.Len()),
		zap.Int("dimension", provider.Dimension()),
	)

	extractor := fetch.NewExtractor(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
		fetch.WithMaxParagraphs(cfg.Fetch.MaxParagraphs),
	)

	handler := api.NewHandler(provider, cat, extractor, logger)

	port := cfg.Server.Port
	if env := os.Getenv("PORT"); env != "" {
		if p, convErr := strconv.Atoi(env); convErr == nil {
			port = p
		}
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Assessment recommender listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

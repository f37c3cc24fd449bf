package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	parsley "github.com/goliatone/go-parsley"
	"github.com/goliatone/go-parsley/internal/server"
	"github.com/goliatone/go-parsley/pkg/metadata"
	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/orchestrator"
)

const remoteTimeout = 30 * time.Second

// Config is read from the environment, after loading an optional .env file.
type Config struct {
	// Addr to listen on. ENV: PARSLEY_ADDR
	Addr string `env:"PARSLEY_ADDR,default=:8080"`
	// Source is the OpenAPI document path or URL. ENV: PARSLEY_SOURCE
	Source string `env:"PARSLEY_SOURCE,required"`
	// MetadataDir holds form metadata files, reloaded on change. ENV: PARSLEY_METADATA_DIR
	MetadataDir string `env:"PARSLEY_METADATA_DIR"`
	// Renderer used by GET /forms/{operationID}. ENV: PARSLEY_RENDERER
	Renderer string `env:"PARSLEY_RENDERER,default=vanilla"`
	// LogLevel is one of debug, info, warn, error. ENV: PARSLEY_LOG_LEVEL
	LogLevel string `env:"PARSLEY_LOG_LEVEL,default=info"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "decode config: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	src, err := pkgopenapi.SourceFor(cfg.Source)
	if err != nil {
		return err
	}

	genOptions := []orchestrator.Option{
		orchestrator.WithLoader(parsley.NewLoader(pkgopenapi.WithHTTPFallback(remoteTimeout))),
	}
	if cfg.MetadataDir != "" {
		live, err := metadata.NewLive(cfg.MetadataDir, metadata.WithLogger(logger))
		if err != nil {
			return err
		}
		go func() {
			if err := live.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("metadata watch", slog.String("error", err.Error()))
			}
		}()
		genOptions = append(genOptions, orchestrator.WithMetadata(live))
	}

	srv := server.New(orchestrator.New(genOptions...), src,
		server.WithLogger(logger),
		server.WithRenderer(cfg.Renderer),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			slog.String("addr", cfg.Addr),
			slog.String("source", cfg.Source),
			slog.String("renderer", cfg.Renderer),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	parsley "github.com/goliatone/go-parsley"
	"github.com/goliatone/go-parsley/internal/prompt"
	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/orchestrator"
)

const remoteTimeout = 30 * time.Second

func main() {
	opID := flag.String("operation", "", "operation ID to render (prompts when empty on a terminal)")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, attrs)")
	metadataDir := flag.String("metadata", "", "directory holding form metadata files")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "openapi.yaml", "OpenAPI document path or URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, options{
		source:      *source,
		operationID: *opID,
		renderer:    *renderer,
		metadataDir: *metadataDir,
		output:      *output,
	}); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		logger.Error("generate form", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	source      string
	operationID string
	renderer    string
	metadataDir string
	output      string
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	src, err := pkgopenapi.SourceFor(opts.source)
	if err != nil {
		return err
	}

	genOptions := []orchestrator.Option{
		orchestrator.WithLoader(parsley.NewLoader(pkgopenapi.WithHTTPFallback(remoteTimeout))),
	}
	if opts.metadataDir != "" {
		genOptions = append(genOptions, orchestrator.WithMetadataFS(os.DirFS(opts.metadataDir)))
	}
	gen := orchestrator.New(genOptions...)

	req := orchestrator.Request{
		Source:      src,
		OperationID: opts.operationID,
		Renderer:    opts.renderer,
	}

	if req.OperationID == "" {
		if !prompt.Interactive(os.Stdin) {
			return fmt.Errorf("-operation is required when stdin is not a terminal")
		}
		ids, err := gen.Operations(ctx, req)
		if err != nil {
			return err
		}
		picked, err := prompt.NewSurveyPicker(nil).Select(ctx, prompt.SelectConfig{
			Message:  "Operation to render:",
			Options:  ids,
			PageSize: 15,
		})
		if err != nil {
			return err
		}
		req.OperationID = picked
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate %s: %w", req.OperationID, err)
	}

	if opts.output == "" {
		_, err := fmt.Fprintln(os.Stdout, string(out))
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("form written",
		slog.String("operation", req.OperationID),
		slog.String("renderer", opts.renderer),
		slog.String("path", opts.output),
	)
	return nil
}

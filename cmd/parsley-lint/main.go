package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	parsley "github.com/goliatone/go-parsley"
	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(out, "\nLint OpenAPI documents for invalid %s extensions and patterns.\n", pkgopenapi.ExtensionKey)
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	loader := parsley.NewLoader()
	// Validation is off so documents with schema errors still get linted.
	parser := parsley.NewParser(pkgopenapi.WithValidation(false))

	failed := false
	for _, path := range paths {
		violations, err := lintFile(ctx, loader, parser, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, v)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, loader pkgopenapi.Loader, parser pkgopenapi.Parser, path string) ([]pkgopenapi.Violation, error) {
	doc, err := loader.Load(ctx, pkgopenapi.SourceFromFile(path))
	if err != nil {
		return nil, err
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}
	return pkgopenapi.Lint(operations), nil
}

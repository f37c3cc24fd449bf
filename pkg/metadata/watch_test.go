package metadata_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-parsley/pkg/metadata"
	"github.com/goliatone/go-parsley/pkg/model"
)

func TestLive_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "forms.yaml"), "forms:\n  signup:\n    namespace: data-one\n")

	reloaded := make(chan *metadata.Store, 4)
	live, err := metadata.NewLive(dir,
		metadata.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		metadata.WithDebounce(10*time.Millisecond),
		metadata.WithOnReload(func(store *metadata.Store) { reloaded <- store }),
	)
	if err != nil {
		t.Fatalf("new live: %v", err)
	}
	if meta, _ := live.Store().Meta("signup"); meta.Namespace != "data-one" {
		t.Fatalf("initial load: %#v", meta)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- live.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "forms.yaml"), "forms:\n  signup:\n    namespace: data-two\n")

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}

	form := &model.Form{Name: "signup"}
	if err := live.Decorate(form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if form.Meta == nil || form.Meta.Namespace != "data-two" {
		t.Fatalf("expected reloaded namespace, got %#v", form.Meta)
	}
}

func TestLive_FailedReloadKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "forms.json"), `{"forms":{"a":{"namespace":"data-a"}}}`)

	live, err := metadata.NewLive(dir)
	if err != nil {
		t.Fatalf("new live: %v", err)
	}
	writeFile(t, filepath.Join(dir, "forms.json"), `{"forms":`)

	if err := live.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if meta, ok := live.Store().Meta("a"); !ok || meta.Namespace != "data-a" {
		t.Fatalf("previous snapshot lost: %#v", meta)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Ponnanna-Pranav/SignDoc/internal/config"
)

func newTestFilesystem(t *testing.T) System {
	t.Helper()

	cfg := &config.StorageConfig{
		Backend:  config.StorageBackendFilesystem,
		BasePath: t.TempDir(),
	}

	sys, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if err := sys.Start(context.Background()); err != nil {
		t.Fatalf("start storage: %v", err)
	}
	return sys
}

func TestFilesystemRoundTrip(t *testing.T) {
	sys := newTestFilesystem(t)
	ctx := context.Background()
	data := []byte("file contents")

	if err := sys.Store(ctx, "documents/abc/scan.pdf", data); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := sys.Retrieve(ctx, "documents/abc/scan.pdf")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("retrieved %q, want %q", got, data)
	}

	ok, err := sys.Validate(ctx, "documents/abc/scan.pdf")
	if err != nil || !ok {
		t.Errorf("validate: ok=%v err=%v", ok, err)
	}
}

func TestFilesystemOverwrite(t *testing.T) {
	sys := newTestFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "key", []byte("first")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sys.Store(ctx, "key", []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := sys.Retrieve(ctx, "key")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("retrieved %q, want %q", got, "second")
	}
}

func TestFilesystemRetrieveMissing(t *testing.T) {
	sys := newTestFilesystem(t)

	if _, err := sys.Retrieve(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFilesystemDeleteIdempotent(t *testing.T) {
	sys := newTestFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "key", []byte("data")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sys.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := sys.Delete(ctx, "key"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}

	ok, err := sys.Validate(ctx, "key")
	if err != nil || ok {
		t.Errorf("expected key gone, ok=%v err=%v", ok, err)
	}
}

func TestFilesystemRejectsInvalidKeys(t *testing.T) {
	sys := newTestFilesystem(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "/etc/passwd", "a/../../b"} {
		if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("store %q: expected ErrInvalidKey, got %v", key, err)
		}
		if _, err := sys.Retrieve(ctx, key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("retrieve %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

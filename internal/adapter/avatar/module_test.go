package avatar

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/polkiloo/pontobip/internal/config"
)

func TestNewStoreSelectsLocal(t *testing.T) {
	cfg := &config.Config{Avatar: config.AvatarConfig{Store: config.AvatarStoreLocal, Dir: filepath.Join(t.TempDir(), "a"), PublicPath: "/avatars"}}
	store, err := newStore(storeParams{Ctx: context.Background(), Config: cfg, Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", store)
	}
}

func TestNewStoreS3RequiresBucket(t *testing.T) {
	cfg := &config.Config{Avatar: config.AvatarConfig{Store: config.AvatarStoreS3}}
	if _, err := newStore(storeParams{Ctx: context.Background(), Config: cfg, Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}); err == nil {
		t.Fatal("expected error")
	}
}

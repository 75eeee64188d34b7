// Package avatar validates profile pictures and persists them to disk or object storage.
package avatar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists an avatar under key and returns the URL it is served from.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalStore writes avatars into a directory served statically.
type LocalStore struct {
	dir        string
	publicPath string
}

func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("avatar dir must be provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	if trimmed := strings.Trim(publicPath, "/"); trimmed != "" {
		publicPath = "/" + trimmed
	} else {
		publicPath = ""
	}
	return &LocalStore{dir: dir, publicPath: publicPath}, nil
}

// Dir returns the directory avatars are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save replaces the file atomically through a temp file in the same directory.
func (s *LocalStore) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	name := filepath.Base(key)
	if name == "." || name == "/" || name != key {
		return "", fmt.Errorf("invalid avatar key %q", key)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp avatar: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write avatar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	s.removeSiblings(name)

	return s.publicPath + "/" + name, nil
}

// removeSiblings drops earlier uploads of the same key saved under another image extension.
func (s *LocalStore) removeSiblings(name string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for _, a := range allowed {
		if a.ext == ext {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, stem+a.ext))
	}
}

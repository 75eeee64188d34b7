package test

import (
	"context"
	"sync"

	"github.com/polkiloo/pontobip/internal/adapter/avatar"
)

// AvatarStoreStub records saved avatars and returns "/avatars/<key>" by default.
type AvatarStoreStub struct {
	mu     sync.Mutex
	SaveFn func(context.Context, string, []byte, string) (string, error)
	Saved  map[string][]byte
}

// Save delegates to SaveFn or records the payload.
func (s *AvatarStoreStub) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, key, data, contentType)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Saved == nil {
		s.Saved = make(map[string][]byte)
	}
	s.Saved[key] = append([]byte(nil), data...)
	return "/avatars/" + key, nil
}

var _ avatar.Store = (*AvatarStoreStub)(nil)

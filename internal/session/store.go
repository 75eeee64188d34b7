// Package session keeps authenticated sessions on the server so a cookie only carries an opaque id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by id.
type Store interface {
	Create(ctx context.Context, userID string, role model.Role) (*model.Session, error)
	Lookup(ctx context.Context, id string) (*model.Session, error)
	Destroy(ctx context.Context, id string) error
	// DestroyByUser revokes every session opened by the user.
	DestroyByUser(ctx context.Context, userID string) error
}

type clock struct {
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func newClock(ttl time.Duration) clock {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return clock{ttl: ttl, now: time.Now, newID: uuid.NewString}
}

func (c clock) build(userID string, role model.Role) *model.Session {
	now := c.now().UTC()
	return &model.Session{
		ID:        c.newID(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
}

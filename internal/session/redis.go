package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

const (
	keyPrefix   = "session:"
	userPrefix  = "session:user:"
	pingTimeout = 5 * time.Second
)

// RedisStore keeps sessions in redis with the session ttl as key expiry.
type RedisStore struct {
	clock

	client *redis.Client
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{clock: newClock(ttl), client: client}
}

// Connect initialises a redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Create(ctx context.Context, userID string, role model.Role) (*model.Session, error) {
	sess := s.build(userID, role)

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), string(payload), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	index := userKey(userID)
	if err := s.client.SAdd(ctx, index, sess.ID).Err(); err != nil {
		return nil, fmt.Errorf("index session: %w", err)
	}
	if err := s.client.Expire(ctx, index, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("index session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Lookup(ctx context.Context, id string) (*model.Session, error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DestroyByUser deletes every session listed in the user's index, then the index itself.
func (s *RedisStore) DestroyByUser(ctx context.Context, userID string) error {
	index := userKey(userID)
	ids, err := s.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("load user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	keys = append(keys, index)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func userKey(userID string) string {
	return userPrefix + userID
}

func key(id string) string {
	return keyPrefix + id
}

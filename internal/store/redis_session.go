package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
)

const sessionKeyPrefix = "shoptrack:sess:"

// RedisSessionStore is the session adapter for deployments where the
// auth system keeps sessions in redis instead of the sessions table.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(addr, password string, db int) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisSessionStore{client: client}, nil
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// sessionRecord is the redis wire form. The token lives in the key, not
// the value, matching how the auth system writes these entries.
type sessionRecord struct {
	UserID      uuid.UUID  `json:"user_id"`
	ActiveOrgID *uuid.UUID `json:"active_org_id,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (s *RedisSessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", token, err)
	}

	sess := &domain.Session{
		Token:     token,
		UserID:    rec.UserID,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}
	if rec.ActiveOrgID != nil {
		sess.ActiveOrgID = *rec.ActiveOrgID
	}
	return sess, nil
}

func (s *RedisSessionStore) SetActiveOrg(ctx context.Context, token string, orgID uuid.UUID) error {
	key := sessionKeyPrefix + token

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode session %s: %w", token, err)
	}
	rec.ActiveOrgID = &orgID

	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// KeepTTL so the auth system's expiry on the entry is preserved.
	return s.client.Set(ctx, key, out, redis.KeepTTL).Err()
}

// Seed writes a full session entry. Only tests and the seed script use
// this; the service itself never creates sessions.
func (s *RedisSessionStore) Seed(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	rec := sessionRecord{
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
	}
	if sess.ActiveOrgID != uuid.Nil {
		id := sess.ActiveOrgID
		rec.ActiveOrgID = &id
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.Token, data, ttl).Err()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bdc/internal/config"
	"bdc/internal/domain"
)

const sessionPrefix = "bdc:session:"

// RedisSessions keeps dashboard sessions as keys that expire on their own.
type RedisSessions struct {
	client *redis.Client
}

// NewRedisSessions connects and pings before returning.
func NewRedisSessions(cfg config.RedisConfig) (*RedisSessions, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisSessions{client: client}, nil
}

func key(sid string) string { return sessionPrefix + sid }

func (r *RedisSessions) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	if err := r.client.Set(ctx, key(sid), userID, ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (r *RedisSessions) Lookup(ctx context.Context, sid string) (string, error) {
	userID, err := r.client.Get(ctx, key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	return userID, err
}

// Touch resets the key's TTL.
func (r *RedisSessions) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, key(sid), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RedisSessions) Delete(ctx context.Context, sid string) error {
	return r.client.Del(ctx, key(sid)).Err()
}

func (r *RedisSessions) Close() error {
	return r.client.Close()
}

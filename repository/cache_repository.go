package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized schedule results by key. A ttl of zero
// means the entry does not expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (NoopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

package cache

import (
	"context"
	"time"
)

// NoopAvatarCache is used when caching is disabled. Every lookup misses.
type NoopAvatarCache struct{}

func (NoopAvatarCache) Get(context.Context, int64) (*AvatarEntry, error) { return nil, ErrCacheMiss }

func (NoopAvatarCache) Set(context.Context, *AvatarEntry, time.Duration) error { return nil }

func (NoopAvatarCache) Delete(context.Context, ...int64) error { return nil }

func (NoopAvatarCache) Close() error { return nil }

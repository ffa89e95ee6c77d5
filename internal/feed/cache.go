package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"socialfeed/internal/config"

	"github.com/go-redis/redis/v8"
)

// FeedCache keeps the cursor-less first page of each (owner, feedType) feed
// in redis for a short TTL. Regeneration and teardown invalidate it; a
// cursor-bearing request always bypasses it. All methods degrade to a miss
// or no-op on redis errors so the cache can never break a read.
type FeedCache struct {
	inner *redis.Client
	ttl   time.Duration
}

func NewFeedCache(cfg *config.Config) *FeedCache {
	return &FeedCache{
		inner: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
		ttl: cfg.Feed.CacheTTL,
	}
}

func firstPageKey(userID uint64, feedType FeedType, pageSize int) string {
	return fmt.Sprintf("feed:%d:%s:p%d", userID, feedType, pageSize)
}

func (c *FeedCache) GetFirstPage(ctx context.Context, userID uint64, feedType FeedType, pageSize int) (*FeedPage, bool) {
	if c == nil || c.inner == nil {
		return nil, false
	}

	raw, err := c.inner.Get(ctx, firstPageKey(userID, feedType, pageSize)).Result()
	if err != nil {
		return nil, false
	}

	var page FeedPage
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (c *FeedCache) SetFirstPage(ctx context.Context, userID uint64, feedType FeedType, pageSize int, page *FeedPage) {
	if c == nil || c.inner == nil {
		return
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	_ = c.inner.Set(ctx, firstPageKey(userID, feedType, pageSize), raw, c.ttl).Err()
}

// Invalidate drops every cached first page for the (owner, feedType) pair.
// Page size is part of the key, so the keys are found by pattern.
func (c *FeedCache) Invalidate(ctx context.Context, userID uint64, feedType FeedType) {
	if c == nil || c.inner == nil {
		return
	}

	pattern := fmt.Sprintf("feed:%d:%s:p*", userID, feedType)
	keys, err := c.inner.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.inner.Del(ctx, keys...).Err()
}

// InvalidateAll drops every feed type's cached pages for one owner.
func (c *FeedCache) InvalidateAll(ctx context.Context, userID uint64) {
	for _, ft := range AllFeedTypes() {
		c.Invalidate(ctx, userID, ft)
	}
}

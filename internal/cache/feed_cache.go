package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"blogql/internal/model"
)

const feedKeyPrefix = "feed:page:"

// FeedCache keeps paginated post-feed pages in redis for a short TTL so the
// listing query does not hit MySQL on every request.
type FeedCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewFeedCache(client *redisv9.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &FeedCache{client: client, ttl: ttl}
}

func (c *FeedCache) GetPage(ctx context.Context, page int) (*model.PostPage, bool, error) {
	raw, err := c.client.Get(ctx, c.pageKey(page)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get feed page failed: %w", err)
	}

	var data model.PostPage
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached feed page failed: %w", err)
	}
	return &data, true, nil
}

func (c *FeedCache) SetPage(ctx context.Context, page int, data *model.PostPage) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal feed page failed: %w", err)
	}
	if err := c.client.Set(ctx, c.pageKey(page), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set feed page failed: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached feed page. Called after a post changes.
func (c *FeedCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, feedKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete feed page failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan feed pages failed: %w", err)
	}
	return nil
}

func (c *FeedCache) pageKey(page int) string {
	return fmt.Sprintf("%s%d", feedKeyPrefix, page)
}

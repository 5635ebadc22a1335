package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketReco/business/recommendation"
	"marketReco/domain"
)

type BehaviorCache struct {
	client *redis.Client
}

var _ recommendation.BehaviorCache = (*BehaviorCache)(nil)

func NewBehaviorCache(client *redis.Client) *BehaviorCache {
	return &BehaviorCache{
		client: client,
	}
}

func behaviorKey(userID uint) string {
	// key format: "behavior:user:{user_id}"
	return fmt.Sprintf("behavior:user:%d", userID)
}

// Get returns the cached pattern. A missing key is a miss, not an error.
func (c *BehaviorCache) Get(ctx context.Context, userID uint) (domain.UserBehaviorPattern, bool, error) {
	val, err := c.client.Get(ctx, behaviorKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.UserBehaviorPattern{}, false, nil
		}
		return domain.UserBehaviorPattern{}, false, fmt.Errorf("failed to get behavior from Redis: %w", err)
	}

	var pattern domain.UserBehaviorPattern
	if err := json.Unmarshal(val, &pattern); err != nil {
		return domain.UserBehaviorPattern{}, false, fmt.Errorf("failed to unmarshal behavior: %w", err)
	}

	return pattern, true, nil
}

func (c *BehaviorCache) Set(ctx context.Context, userID uint, pattern domain.UserBehaviorPattern, ttl time.Duration) error {
	data, err := json.Marshal(pattern)
	if err != nil {
		return fmt.Errorf("failed to marshal behavior: %w", err)
	}

	if err := c.client.Set(ctx, behaviorKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store behavior in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached pattern, e.g. after a new purchase.
func (c *BehaviorCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, behaviorKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate behavior: %w", err)
	}
	return nil
}

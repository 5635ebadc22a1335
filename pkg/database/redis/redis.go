package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"marketReco/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout     = 2 * time.Second
	maxSocketWait   = 3 * time.Second
	connectDeadline = 5 * time.Second
)

// NewRedisClient connects to the behavior cache. Cache calls run inside
// the request deadline, so read/write timeouts never exceed it.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	socketWait := maxSocketWait
	if t := cfg.Server.RequestTimeout; t > 0 && t < socketWait {
		socketWait = t
	}

	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Redis.RedisHost, cfg.Redis.RedisPort),
		Password:     cfg.Redis.RedisPassword,
		DB:           cfg.Redis.RedisDB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  socketWait,
		WriteTimeout: socketWait,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, connectDeadline)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// HealthCheck pings the server; it is registered on /healthz.
func HealthCheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

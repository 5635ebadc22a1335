package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"marketReco/pkg/config"
)

func testConfig(host, port string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: time.Second},
		Redis:  config.RedisConfig{RedisHost: host, RedisPort: port},
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), testConfig(mr.Host(), mr.Port()))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	if got := client.Options().ReadTimeout; got != time.Second {
		t.Fatalf("read timeout should follow the request timeout, got %v", got)
	}

	check := HealthCheck(client)
	if err := check(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}

	mr.Close()
	if err := check(context.Background()); err == nil {
		t.Fatalf("expected health check to fail once the server is gone")
	}

	if err := CloseRedisClient(client); err != nil {
		t.Fatalf("CloseRedisClient: %v", err)
	}
	if err := CloseRedisClient(nil); err != nil {
		t.Fatalf("closing nil client: %v", err)
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	if _, err := NewRedisClient(context.Background(), testConfig(host, port)); err == nil {
		t.Fatalf("expected ping failure")
	}
}

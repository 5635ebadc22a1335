//go:build !integration

package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSet_RoutesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("recommendation_request", "user_id", 7, "trace_id", "abc")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "recommendation_request" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != "abc" {
		t.Fatalf("expected trace_id field, got %v", fields)
	}
}

func TestNop_BeforeInit(t *testing.T) {
	Set(zap.NewNop())
	Debug("ignored", "k", 1)
	Warn("ignored")
}

package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	kv := sanitizeKVs([]interface{}{
		"tenant_id", "6f2d1c1e-7a53-4f0e-9d7b-1a1b2c3d4e5f",
		"redis_password", "hunter2",
		"product_id", "p-1",
		"dangling",
	})
	if len(kv) != 7 {
		t.Fatalf("expected 7 entries, got %d: %v", len(kv), kv)
	}
	if s, _ := kv[1].(string); !strings.HasPrefix(s, "hash:") {
		t.Fatalf("tenant_id should be hashed, got %v", kv[1])
	}
	if kv[3] != "[REDACTED]" {
		t.Fatalf("password should be redacted, got %v", kv[3])
	}
	if kv[5] != "p-1" {
		t.Fatalf("product_id should pass through, got %v", kv[5])
	}
	if kv[6] != "dangling" {
		t.Fatalf("odd trailing key should be kept, got %v", kv[6])
	}
}

func TestNewTestMode(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New(test): %v", err)
	}
	log.With("service", "x").Debug("dropped below warn")
}

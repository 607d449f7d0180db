package persistent

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorage(t *testing.T) {
	storage := NewMemory()
	ctx := context.Background()

	if _, err := storage.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Error("Missing keys should yield ErrNotFound")
	}

	if err := storage.Set(ctx, "key", "value"); err != nil {
		t.Error("Set should not fail: ", err)
	}

	value, err := storage.Get(ctx, "key")
	if err != nil {
		t.Error("Get should not fail: ", err)
	}
	if value != "value" {
		t.Error("Get should return the stored value")
	}

	storage.Set(ctx, "key", "updated")
	value, _ = storage.Get(ctx, "key")
	if value != "updated" {
		t.Error("Set should overwrite existing values")
	}
}

func TestRedisStorageKeyPrefix(t *testing.T) {
	r := &RedisStorage{prefix: "myapp"}
	if r.withPrefix("statsig.stable_id") != "myapp.statsig.stable_id" {
		t.Error("Prefix should be prepended with a dot separator")
	}

	bare := &RedisStorage{}
	if bare.withPrefix("statsig.stable_id") != "statsig.stable_id" {
		t.Error("Empty prefix should leave keys untouched")
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) *Client {
	s := miniredis.RunT(t)
	return NewFromClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
}

func TestSetAndGet(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Expected cached value v, got %q", got)
	}
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	c := setupTestCache(t)

	got, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing key, got %q", got)
	}
}

func TestDelete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if got, _ := c.Get(ctx, "k"); got != nil {
		t.Errorf("Expected key to be gone, got %q", got)
	}
}

// A nil client must behave like a permanently empty cache, never panic.
func TestNilClientFailsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if got, err := c.Get(ctx, "k"); err != nil || got != nil {
		t.Errorf("Expected nil,nil from nil client, got %v, %v", got, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Errorf("Expected Set on nil client to be a no-op, got %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Expected Delete on nil client to be a no-op, got %v", err)
	}
}

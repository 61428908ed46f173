package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Cooldown coalesces repeated notifications sharing a DedupKey within a
// window. The first caller claims the key with SETNX, later ones inside the
// TTL are dropped.
type Cooldown struct {
	rdb    setNXer
	window time.Duration
	next   Notifier
}

func NewCooldown(rdb setNXer, window time.Duration, next Notifier) *Cooldown {
	return &Cooldown{rdb: rdb, window: window, next: next}
}

func (c *Cooldown) Send(ctx context.Context, msg Message) error {
	if msg.DedupKey == "" || c.window <= 0 {
		return c.next.Send(ctx, msg)
	}

	claimed, err := c.rdb.SetNX(ctx, "notify:cooldown:"+msg.DedupKey, 1, c.window).Result()
	if err != nil {
		return fmt.Errorf("claim cooldown: %w", err)
	}
	if !claimed {
		return nil
	}
	return c.next.Send(ctx, msg)
}

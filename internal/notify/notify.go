// Package notify hands SMS and push messages to the delivery transport.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const DefaultQueue = "notifications:outbox"

type Channel string

const (
	ChannelSMS  Channel = "sms"
	ChannelPush Channel = "push"
)

const (
	KindBlockedAttempt = "blocked_customer_attempt"
	KindReminder       = "reservation_reminder"
)

type Message struct {
	Kind          string            `json:"kind"`
	Channel       Channel           `json:"channel"`
	RecipientType string            `json:"recipientType"`
	RecipientID   uuid.UUID         `json:"recipientId"`
	Phone         string            `json:"phone,omitempty"`
	Title         string            `json:"title,omitempty"`
	Body          string            `json:"body"`
	Data          map[string]string `json:"data,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`

	// DedupKey, when set, lets Cooldown drop repeats.
	DedupKey string `json:"-"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type listPusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisNotifier enqueues messages on a Redis list drained by the SMS and
// push workers.
type RedisNotifier struct {
	rdb   listPusher
	queue string
}

func NewRedisNotifier(rdb listPusher, queue string) *RedisNotifier {
	if queue == "" {
		queue = DefaultQueue
	}
	return &RedisNotifier{rdb: rdb, queue: queue}
}

func (n *RedisNotifier) Send(ctx context.Context, msg Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := n.rdb.LPush(ctx, n.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

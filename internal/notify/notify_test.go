package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedis struct {
	mu     sync.Mutex
	lists  map[string][]string
	keys   map[string]time.Duration
	pushEr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{lists: map[string][]string{}, keys: map[string]time.Duration{}}
}

func (f *fakeRedis) LPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushEr != nil {
		return redis.NewIntResult(0, f.pushEr)
	}
	for _, v := range values {
		f.lists[key] = append([]string{string(v.([]byte))}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = ttl
	return redis.NewBoolResult(true, nil)
}

type recorder struct {
	mu   sync.Mutex
	msgs []Message
	err  error
	// ctx.Err() observed while sending
	ctxErrs []error
}

func (r *recorder) Send(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return r.err
}

func TestRedisNotifier_PushesJSON(t *testing.T) {
	rdb := newFakeRedis()
	n := NewRedisNotifier(rdb, "")

	id := uuid.New()
	require.NoError(t, n.Send(context.Background(), Message{
		Kind:        KindBlockedAttempt,
		Channel:     ChannelPush,
		RecipientID: id,
		Body:        "hello",
		DedupKey:    "secret",
	}))

	require.Len(t, rdb.lists[DefaultQueue], 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(rdb.lists[DefaultQueue][0]), &got))
	assert.Equal(t, KindBlockedAttempt, got["kind"])
	assert.Equal(t, id.String(), got["recipientId"])
	assert.NotContains(t, got, "DedupKey")
	assert.NotEmpty(t, got["createdAt"])
}

func TestRedisNotifier_WrapsErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.pushEr = errors.New("connection refused")

	err := NewRedisNotifier(rdb, "q").Send(context.Background(), Message{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCooldown_CoalescesByKey(t *testing.T) {
	rdb := newFakeRedis()
	next := &recorder{}
	c := NewCooldown(rdb, 10*time.Minute, next)
	ctx := context.Background()

	require.NoError(t, c.Send(ctx, Message{DedupKey: "a"}))
	require.NoError(t, c.Send(ctx, Message{DedupKey: "a"}))
	require.NoError(t, c.Send(ctx, Message{DedupKey: "b"}))
	require.NoError(t, c.Send(ctx, Message{}))
	require.NoError(t, c.Send(ctx, Message{}))

	assert.Len(t, next.msgs, 4)
	assert.Equal(t, 10*time.Minute, rdb.keys["notify:cooldown:a"])
}

func TestDetached_OutlivesRequestContext(t *testing.T) {
	next := &recorder{err: errors.New("sms gateway down")}
	d := NewDetached(next, zap.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Go(ctx, Message{Kind: KindBlockedAttempt})
	d.Wait()

	require.Len(t, next.msgs, 1)
	assert.NoError(t, next.ctxErrs[0])
}

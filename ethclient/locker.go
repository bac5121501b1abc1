package ethclient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"prism/log"
)

// NonceLocker serializes nonce assignment and broadcast for one signing key.
type NonceLocker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker is a context aware mutex for a single process.
type LocalLocker struct {
	ch chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{ch: make(chan struct{}, 1)}
}

func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
		return func() { <-l.ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release deletes the lease only while it still holds our token
var release = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker holds a SET NX lease so that replicas sharing the key take turns.
type RedisLocker struct {
	rdb  *redis.Client
	key  string
	ttl  time.Duration
	poll time.Duration
}

// NewRedisLocker connects to redisUrl. The lease is keyed by the signer address and expires after
// ttl so that a crashed holder cannot block the others forever.
func NewRedisLocker(ctx context.Context, redisUrl, signer string, ttl time.Duration) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisLocker{rdb: rdb, key: lockKey(signer), ttl: ttl, poll: 50 * time.Millisecond}, nil
}

func lockKey(signer string) string {
	return fmt.Sprintf("prism:nonce:%s", signer)
}

func (l *RedisLocker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("setnx failed: %w", err)
		}
		if ok {
			return func() {
				// the caller's context may already be gone
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := release.Run(ctx, l.rdb, []string{l.key}, token).Err(); err != nil {
					log.Warnf("release nonce lock %s: %v", l.key, err)
				}
			}, nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (l *RedisLocker) Close() error {
	return l.rdb.Close()
}

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"motes-generator.backend/pkg/crypto"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("lock already held")

// releaseScript deletes the key only while it still carries our token, so a
// holder whose TTL lapsed cannot remove a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out SET NX based locks on the package client
type Locker struct {
	prefix string
}

// NewLocker creates a locker whose keys are namespaced by prefix
func NewLocker(prefix string) *Locker {
	return &Locker{prefix: prefix}
}

// Acquire takes the named lock for ttl. The returned release func is safe to
// call after the lock expired.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context), error) {
	if client == nil {
		return nil, ErrUnavailable
	}

	token, err := crypto.GenerateRandomToken(16)
	if err != nil {
		return nil, err
	}
	key := l.prefix + name

	ok, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	c := client
	return func(ctx context.Context) {
		_ = releaseScript.Run(ctx, c, []string{key}, token).Err()
	}, nil
}

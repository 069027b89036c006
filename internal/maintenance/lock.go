package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_locker.go -package=mocks . Locker

// DefaultLockKey is the Redis key guarding maintenance cycles across instances.
const DefaultLockKey = "maintenance:cycle-lock"

// Locker extends the scheduler's cycle guard across processes.
type Locker interface {
	// TryLock attempts to take the lock without waiting. When acquired is true the caller
	// must invoke release once the cycle is over.
	TryLock(ctx context.Context) (release func(), acquired bool, err error)
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker backed by a single Redis key with a TTL.
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a RedisLocker. The ttl bounds how long a crashed holder can block
// other instances and should stay below the scheduler interval.
func NewRedisLocker(client *redis.Client, key string, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if key == "" {
		key = DefaultLockKey
	}
	return &RedisLocker{client: client, key: key, ttl: ttl, logger: logger}
}

// TryLock implements Locker.
func (l *RedisLocker) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
			l.logger.Warn("failed to release maintenance lock", zap.String("key", l.key), zap.Error(err))
		}
	}
	return release, true, nil
}

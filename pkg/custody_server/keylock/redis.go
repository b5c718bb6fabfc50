package keylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cologi/hubcustody/pkg/util"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// redisReleaseScript deletes the lock only if it still carries the caller's token.
// KEYS[1] = lock key
// ARGV[1] = token written by SET NX
var redisReleaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisRefreshScript extends the lease only if the lock still carries the caller's token.
// KEYS[1] = lock key
// ARGV[1] = token written by SET NX
// ARGV[2] = lease in milliseconds
var redisRefreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

var errLockHeld = errors.New("lock is held by another owner")

type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	Poll     time.Duration `yaml:"poll"`
}

type RedisLockerOption func(*_RedisLocker)

func WithPrefix(prefix string) RedisLockerOption {
	return func(l *_RedisLocker) {
		l.prefix = prefix
	}
}

// WithTTL bounds how long a crashed holder can keep a key.
// A live holder renews its lease every third of ttl until it unlocks.
func WithTTL(ttl time.Duration) RedisLockerOption {
	return func(l *_RedisLocker) {
		if ttl >= 3*time.Millisecond {
			l.ttl = ttl
		}
	}
}

func WithPollInterval(poll time.Duration) RedisLockerOption {
	return func(l *_RedisLocker) {
		if poll > 0 {
			l.poll = poll
		}
	}
}

type _RedisLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	poll   time.Duration
}

// NewRedisLocker returns a Locker shared by every process talking to the same Redis.
func NewRedisLocker(client redis.UniversalClient, options ...RedisLockerOption) *_RedisLocker {
	l := &_RedisLocker{
		client: client,
		prefix: "hubcustody:lock:",
		ttl:    30 * time.Second,
		poll:   50 * time.Millisecond,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func NewRedisLockerWithConfig(cfg RedisConfig) (*_RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	options := []RedisLockerOption{WithTTL(cfg.TTL), WithPollInterval(cfg.Poll)}
	if cfg.Prefix != "" {
		options = append(options, WithPrefix(cfg.Prefix))
	}
	return NewRedisLocker(client, options...), nil
}

func (l *_RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	token := util.NewShortID()

	err := retry.Do(
		func() error {
			ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if !ok {
				return errLockHeld
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(l.poll),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("lock %q: %w", lockKey, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(lockKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			if err := redisReleaseScript.Run(context.Background(), l.client, []string{lockKey}, token).Err(); err != nil {
				logrus.Warnf("failed to release lock %q: %v", lockKey, err)
			}
		})
	}, nil
}

// keepAlive renews the lease of lockKey until stop is closed or the lease is lost.
func (l *_RedisLocker) keepAlive(lockKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
		renewed, err := redisRefreshScript.Run(ctx, l.client, []string{lockKey}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			logrus.Warnf("failed to renew lock %q: %v", lockKey, err)
			continue
		}
		if renewed == 0 {
			logrus.Errorf("lock %q was lost before it was released", lockKey)
			return
		}
	}
}

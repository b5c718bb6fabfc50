package keylock_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/keylock"
	"github.com/cologi/hubcustody/pkg/util"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS is not set")
	}

	locker, err := keylock.NewRedisLockerWithConfig(keylock.RedisConfig{
		Address: addr,
		Prefix:  "hubcustody:test:" + util.NewShortID() + ":",
		TTL:     5 * time.Second,
		Poll:    5 * time.Millisecond,
	})
	require.NoError(t, err)

	unlock, err := locker.Lock(context.Background(), "bl:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "bl:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock2, err := locker.Lock(context.Background(), "bl:1")
	require.NoError(t, err)
	unlock2()
}

func TestRedisLockerRenewsLease(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS is not set")
	}

	prefix := "hubcustody:test:" + util.NewShortID() + ":"
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	const ttl = 300 * time.Millisecond
	locker := keylock.NewRedisLocker(client, keylock.WithPrefix(prefix), keylock.WithTTL(ttl), keylock.WithPollInterval(5*time.Millisecond))

	unlock, err := locker.Lock(context.Background(), "plan:devanning:h1:1001")
	require.NoError(t, err)

	// Hold the lock for several lease periods.
	time.Sleep(4 * ttl)

	pttl, err := client.PTTL(context.Background(), prefix+"plan:devanning:h1:1001").Result()
	require.NoError(t, err)
	assert.Greater(t, pttl, time.Duration(0))

	ctx, cancel := context.WithTimeout(context.Background(), ttl)
	defer cancel()
	_, err = locker.Lock(ctx, "plan:devanning:h1:1001")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	exists, err := client.Exists(context.Background(), prefix+"plan:devanning:h1:1001").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	// Renewal stops once the lock has been taken over.
	unlock, err = locker.Lock(context.Background(), "bl:1002")
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(), prefix+"bl:1002", "other-owner", 0).Err())
	time.Sleep(2 * ttl)
	owner, err := client.Get(context.Background(), prefix+"bl:1002").Result()
	require.NoError(t, err)
	assert.Equal(t, "other-owner", owner)
	pttl, err = client.PTTL(context.Background(), prefix+"bl:1002").Result()
	require.NoError(t, err)
	assert.Less(t, pttl, time.Duration(0))
	unlock()
	owner, err = client.Get(context.Background(), prefix+"bl:1002").Result()
	require.NoError(t, err)
	assert.Equal(t, "other-owner", owner)
	require.NoError(t, client.Del(context.Background(), prefix+"bl:1002").Err())
}

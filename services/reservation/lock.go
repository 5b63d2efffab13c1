package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ListingLocker serializes reservation attempts per listing. Lock blocks
// until the listing's lock is held or ctx is done, then returns the
// release function. Attempts on different listings never contend.
type ListingLocker interface {
	Lock(ctx context.Context, listingID string) (release func(), err error)
}

// RedisListingLocker implements ListingLocker with SETNX leases so
// exclusion holds across processes. The TTL bounds how long a crashed
// holder can block a listing.
type RedisListingLocker struct {
	Client     *redis.Client
	TTL        time.Duration
	RetryDelay time.Duration
}

// NewRedisListingLocker returns a locker with defaults suitable for a
// single reservation attempt (30s lease, 50ms polling).
func NewRedisListingLocker(client *redis.Client) *RedisListingLocker {
	return &RedisListingLocker{
		Client:     client,
		TTL:        30 * time.Second,
		RetryDelay: 50 * time.Millisecond,
	}
}

// releaseScript deletes the lease only when still held by this locker.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisListingLocker) Lock(ctx context.Context, listingID string) (func(), error) {
	key := "listing_lock:" + listingID
	token := uuid.New().String()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for listing %s: %w", listingID, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for lock on listing %s: %w", listingID, ctx.Err())
		case <-time.After(l.RetryDelay):
		}
	}

	release := func() {
		// Release must not be tied to the request context; it may
		// already be cancelled by the time commit finishes.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		releaseScript.Run(rctx, l.Client, []string{key}, token)
	}
	return release, nil
}

// LocalListingLocker implements ListingLocker with in-process mutexes.
// Suitable for single-node deployments and tests.
type LocalListingLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalListingLocker() *LocalListingLocker {
	return &LocalListingLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalListingLocker) Lock(_ context.Context, listingID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[listingID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[listingID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

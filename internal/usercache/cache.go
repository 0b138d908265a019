// Package usercache implements the process-lifetime user_id -> User map:
// single-flight on miss, RW-locked, never evicted during a run, snapshot
// copies handed to external readers.
//
// Grounded on the teacher's CacheManager (chat-service/internal/cache/
// redis_cache.go): an RWMutex-guarded map with a GetOrSet double-checked
// locking shape. Re-pointed here from a Redis-backed distributed cache to an
// in-process one, and from a manual SETNX lock to
// golang.org/x/sync/singleflight — modeled as an injected collaborator,
// never an ambient singleton, so tests can supply deterministic substitutes.
package usercache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// Fetcher fetches one user's profile from the chat platform. Satisfied by
// chatapi.Client (and by ratelimit.Client, which also implements it).
type Fetcher interface {
	User(ctx context.Context, userID string) (chatapi.RawUser, error)
}

// Cache is a concurrent user_id -> User map with single-flight fetch
// coalescing. Zero value is not usable; construct with New.
type Cache struct {
	fetcher Fetcher

	mu    sync.RWMutex
	users map[string]model.User

	group singleflight.Group
}

// New builds an empty Cache backed by fetcher.
func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		users:   make(map[string]model.User),
	}
}

// Get returns the cached user for id, fetching it through fetcher on a miss.
// Concurrent Get calls for the same unknown id coalesce into one fetch; all
// callers observe the same result or the same error.
func (c *Cache) Get(ctx context.Context, id string) (model.User, error) {
	c.mu.RLock()
	u, ok := c.users[id]
	c.mu.RUnlock()
	if ok {
		return u, nil
	}

	result, err, _ := c.group.Do(id, func() (interface{}, error) {
		// Double-check: another goroutine may have populated it while we
		// were waiting to enter Do (rare, but cheap to check).
		c.mu.RLock()
		if u, ok := c.users[id]; ok {
			c.mu.RUnlock()
			return u, nil
		}
		c.mu.RUnlock()

		raw, err := c.fetcher.User(ctx, id)
		if err != nil {
			return model.User{}, err
		}

		u := model.NewUser(raw.UserID, raw.Name, raw.RealName, raw.DisplayName, raw.Email, raw.IsBot)
		c.mu.Lock()
		c.users[id] = u
		c.mu.Unlock()
		return u, nil
	})
	if err != nil {
		return model.User{}, err
	}
	return result.(model.User), nil
}

// Put inserts or overwrites a cached entry directly, without going through
// the fetcher — used when a caller already has the User (e.g. a test fixture,
// or a batch pre-warm).
func (c *Cache) Put(u model.User) {
	c.mu.Lock()
	c.users[u.UserID] = u
	c.mu.Unlock()
}

// Has reports whether id is already cached, without triggering a fetch.
func (c *Cache) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.users[id]
	return ok
}

// Snapshot returns a copy of every cached user, so external readers never
// hold a reference into the cache's internal map.
func (c *Cache) Snapshot() []model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.User, 0, len(c.users))
	for _, u := range c.users {
		out = append(out, u)
	}
	return out
}

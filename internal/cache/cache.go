// Package cache memoizes completed lookup tasks. It bounds memory with
// LRU eviction and clears itself whenever a lookup fails, so a transient
// outage never replays from cache.
package cache

import (
	"container/list"
	"sync"
	"time"

	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/service"
)

// DefaultCapacity is the default number of retained lookup results.
const DefaultCapacity = 64

const (
	heartbeatInterval = time.Second
	heartbeatFreqHz   = 500
	heartbeatDurMs    = 100
)

// Key identifies one lookup request. Fingerprint hashes every option of
// the active service, so any configuration change misses the cache.
type Key struct {
	LangFrom    string
	LangTo      string
	Text        string
	Fingerprint uint64
}

type entry struct {
	key    Key
	result service.Result
}

// Cache is the process-wide request memo. All operations are
// internally synchronized; GetOrCompute holds the lock for the whole
// get-or-compute cycle, which also coalesces concurrent requests for
// the same key into a single task.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[Key]*list.Element
	order    *list.List // front is most recently used
	beeper   host.Beeper
}

// New creates a cache with the given capacity. Zero or negative
// capacity falls back to DefaultCapacity.
func New(capacity int, beeper host.Beeper) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[Key]*list.Element),
		order:    list.New(),
		beeper:   beeper,
	}
}

// GetOrCompute returns the memoized result for key, or runs a task from
// factory and blocks until it completes. While waiting it beeps about
// once per second so a non-visual user hears the lookup is still alive.
// An errored result clears the entire cache before being returned: a
// failure is treated as evidence the whole cache may be stale.
func (c *Cache) GetOrCompute(key Key, factory func() *service.Task) service.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry).result
	}

	task := factory()
	task.Start()
	c.await(task)
	result := task.Result()

	if result.Err {
		c.clearLocked()
		return result
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, result: result})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
	return result
}

// await blocks until the task completes, emitting the liveness
// heartbeat from a ticker decoupled from task observation.
func (c *Cache) await(task *service.Task) {
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	for {
		select {
		case <-task.Done():
			return
		case <-heartbeat.C:
			if c.beeper != nil {
				c.beeper.Beep(heartbeatFreqHz, heartbeatDurMs)
			}
		}
	}
}

// Clear drops every cached result.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cache) clearLocked() {
	c.entries = make(map[Key]*list.Element)
	c.order.Init()
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

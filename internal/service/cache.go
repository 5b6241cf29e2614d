// Package service contains the business logic for the meal planner service.
package service

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/metrics"
	"github.com/guttosm/meal-planner-service/internal/service/cache"
)

// ShardedCache spreads solutions across independently locked LRU shards.
type ShardedCache struct {
	shards []*ttlCache
	mask   uint32
	stopCh chan struct{}
	once   sync.Once
}

// NewShardedCache creates a cache holding up to capacity solutions for ttl,
// split across numShards shards (rounded up to a power of two).
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	sc := &ShardedCache{
		shards: make([]*ttlCache, n),
		mask:   uint32(n - 1),
		stopCh: make(chan struct{}),
	}
	for i := range sc.shards {
		sc.shards[i] = newTTLCache(perShard, ttl)
	}
	go sc.sweep(ttl)
	return sc
}

func (sc *ShardedCache) shard(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.mask]
}

// Get returns a copy of the cached solution for key.
func (sc *ShardedCache) Get(key string) (model.Solution, bool) {
	sol, ok := sc.shard(key).get(key, time.Now())
	if !ok {
		return sol, false
	}
	return sol.Clone(), true
}

// Set stores a copy of value under key.
func (sc *ShardedCache) Set(key string, value model.Solution) {
	sc.shard(key).set(key, value.Clone(), time.Now())
	metrics.UpdateCacheSize(sc.Metrics().Size)
}

// Invalidate removes key.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shard(key).invalidate(key)
}

// Clear empties every shard.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.clear()
	}
	metrics.UpdateCacheSize(0)
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the background expiry sweep. It is safe to call more than once.
func (sc *ShardedCache) Stop() {
	sc.once.Do(func() { close(sc.stopCh) })
}

// Metrics aggregates counters across shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

func (sc *ShardedCache) sweep(ttl time.Duration) {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			for _, s := range sc.shards {
				s.expire(t)
			}
		case <-sc.stopCh:
			return
		}
	}
}

// ttlCache is one LRU shard with per-entry expiry.
type ttlCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type cacheEntry struct {
	key       string
	value     model.Solution
	expiresAt time.Time
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	return &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *ttlCache) get(key string, now time.Time) (model.Solution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.Solution{}, false
	}
	entry := el.Value.(*cacheEntry)
	if now.After(entry.expiresAt) {
		c.removeElement(el)
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.Solution{}, false
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

func (c *ttlCache) set(key string, value model.Solution, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.value = value
		entry.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, value: value, expiresAt: now.Add(c.ttl)})
	if c.order.Len() > c.capacity {
		c.removeElement(c.order.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// expire drops entries whose deadline passed before now.
func (c *ttlCache) expire(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.removeElement(el)
		}
		el = prev
	}
}

func (c *ttlCache) removeElement(el *list.Element) {
	delete(c.items, el.Value.(*cacheEntry).key)
	c.order.Remove(el)
}

func (c *ttlCache) metrics() cache.Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

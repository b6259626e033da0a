package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/chaos-world/status-core/internal/clock"
)

const memoryShardCount = 16

type memoryEntry struct {
	value     float64
	expiresAt time.Time
}

type memoryShard struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// Memory is the fast in-process tier: fixed shard array keyed by FNV hash
// so concurrent actors rarely contend on the same lock.
type Memory struct {
	shards [memoryShardCount]*memoryShard
	clock  clock.Clock
}

// NewMemory creates an in-process cache tier
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.NewSystem()
	}
	m := &Memory{clock: clk}
	for i := range m.shards {
		m.shards[i] = &memoryShard{entries: make(map[string]memoryEntry)}
	}
	return m
}

func (m *Memory) shard(key string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%memoryShardCount]
}

// Get returns a fresh entry; stale entries are evicted opportunistically
func (m *Memory) Get(_ context.Context, key string) (float64, bool) {
	s := m.shard(key)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if !m.clock.Now().Before(entry.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry since the read.
		if cur, still := s.entries[key]; still && !m.clock.Now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return 0, false
	}
	return entry.value, true
}

// Set stores the value; a zero or negative ttl skips the write
func (m *Memory) Set(_ context.Context, key string, value float64, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s := m.shard(key)

	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: m.clock.Now().Add(ttl)}
	s.mu.Unlock()
}

// Delete drops the key
func (m *Memory) Delete(_ context.Context, key string) {
	s := m.shard(key)

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len reports the number of entries across all shards, fresh or not
func (m *Memory) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

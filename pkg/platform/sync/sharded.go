package sync

import (
	"hash/fnv"
	"sync"
)

// ShardedMutex serializes work per key without a single global lock. Keys are
// hashed onto a fixed set of RW mutex shards, so writers to one (tree, xref)
// pair do not block readers of another.
type ShardedMutex struct {
	shards [32]sync.RWMutex
}

func NewShardedMutex() *ShardedMutex {
	return &ShardedMutex{}
}

// Lock acquires the write lock for the key's shard. Empty keys use shard 0.
func (m *ShardedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

func (m *ShardedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

// RLock acquires the read lock for the key's shard.
func (m *ShardedMutex) RLock(key string) {
	m.shards[m.shardFor(key)].RLock()
}

func (m *ShardedMutex) RUnlock(key string) {
	m.shards[m.shardFor(key)].RUnlock()
}

// Do runs fn while holding the write lock for key.
func (m *ShardedMutex) Do(key string, fn func()) {
	m.Lock(key)
	defer m.Unlock(key)
	fn()
}

func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(m.shards)))
}

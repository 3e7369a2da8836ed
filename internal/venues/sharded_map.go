package venues

import (
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/domain"
)

const numShards = 16

// shardedPoolMap spreads pool snapshots over independently locked shards
// to keep admin writes from stalling concurrent quote reads.
type shardedPoolMap struct {
	shards [numShards]poolShard
}

type poolShard struct {
	mu    sync.RWMutex
	pools map[solana.PublicKey]domain.PoolState
}

func newShardedPoolMap() *shardedPoolMap {
	m := &shardedPoolMap{}
	for i := 0; i < numShards; i++ {
		m.shards[i].pools = make(map[solana.PublicKey]domain.PoolState)
	}
	return m
}

// getShard returns the shard for a given key. The first byte of the
// public key is uniformly distributed, so it works as a cheap hash.
func (m *shardedPoolMap) getShard(key solana.PublicKey) *poolShard {
	return &m.shards[key[0]%numShards]
}

func (m *shardedPoolMap) Get(key solana.PublicKey) (domain.PoolState, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	pool, ok := shard.pools[key]
	shard.mu.RUnlock()
	return pool, ok
}

func (m *shardedPoolMap) Set(key solana.PublicKey, pool domain.PoolState) {
	shard := m.getShard(key)
	shard.mu.Lock()
	shard.pools[key] = pool
	shard.mu.Unlock()
}

func (m *shardedPoolMap) Delete(key solana.PublicKey) {
	shard := m.getShard(key)
	shard.mu.Lock()
	delete(shard.pools, key)
	shard.mu.Unlock()
}

func (m *shardedPoolMap) Len() int {
	total := 0
	for i := 0; i < numShards; i++ {
		m.shards[i].mu.RLock()
		total += len(m.shards[i].pools)
		m.shards[i].mu.RUnlock()
	}
	return total
}

// Range iterates over all pools (acquires locks per shard)
func (m *shardedPoolMap) Range(f func(key solana.PublicKey, pool domain.PoolState) bool) {
	for i := 0; i < numShards; i++ {
		m.shards[i].mu.RLock()
		for k, v := range m.shards[i].pools {
			if !f(k, v) {
				m.shards[i].mu.RUnlock()
				return
			}
		}
		m.shards[i].mu.RUnlock()
	}
}

// GetAll returns all pools as a slice
func (m *shardedPoolMap) GetAll() []domain.PoolState {
	result := make([]domain.PoolState, 0, m.Len())
	for i := 0; i < numShards; i++ {
		m.shards[i].mu.RLock()
		for _, pool := range m.shards[i].pools {
			result = append(result, pool)
		}
		m.shards[i].mu.RUnlock()
	}
	return result
}

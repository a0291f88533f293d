package sql

import (
	"sync/atomic"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/jellydator/ttlcache/v3"
)

// blockCache caches blocks by hash. Every write to the store calls DeleteAll,
// which also bumps the generation so that a read started before the write
// cannot cache its now stale result afterwards.
type blockCache struct {
	ttlCache   *ttlcache.Cache[chainhash.Hash, *model.Block]
	generation atomic.Uint64
	stopped    atomic.Bool
}

func newBlockCache(capacity int) *blockCache {
	opts := []ttlcache.Option[chainhash.Hash, *model.Block]{
		ttlcache.WithDisableTouchOnHit[chainhash.Hash, *model.Block](),
	}

	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[chainhash.Hash, *model.Block](uint64(capacity)))
	}

	bc := &blockCache{
		ttlCache: ttlcache.New[chainhash.Hash, *model.Block](opts...),
	}

	go bc.ttlCache.Start()

	return bc
}

// Begin captures the current generation for a Get, query, Set sequence.
func (bc *blockCache) Begin(key chainhash.Hash) *cacheOperation {
	return &cacheOperation{
		cache:      bc,
		key:        key,
		generation: bc.generation.Load(),
	}
}

func (bc *blockCache) DeleteAll() {
	bc.ttlCache.DeleteAll()
	bc.generation.Add(1)
}

func (bc *blockCache) Len() int {
	return bc.ttlCache.Len()
}

func (bc *blockCache) Stop() {
	if bc.stopped.CompareAndSwap(false, true) {
		bc.ttlCache.Stop()
	}
}

type cacheOperation struct {
	cache      *blockCache
	key        chainhash.Hash
	generation uint64
}

// Get returns a copy of the cached block, or nil on a miss.
func (co *cacheOperation) Get() *model.Block {
	item := co.cache.ttlCache.Get(co.key)
	if item == nil {
		return nil
	}

	return cloneBlock(item.Value())
}

// Set caches block unless the cache was invalidated since Begin.
func (co *cacheOperation) Set(block *model.Block, ttl time.Duration) bool {
	if co.generation != co.cache.generation.Load() {
		return false
	}

	co.cache.ttlCache.Set(co.key, cloneBlock(block), ttl)

	return true
}

func cloneBlock(block *model.Block) *model.Block {
	header := *block.Header

	return &model.Block{
		Header:    &header,
		Height:    block.Height,
		Tentative: block.Tentative,
	}
}

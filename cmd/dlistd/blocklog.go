package main

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"lukechampine.com/blake3"

	"github.com/aesopov/dlist"
	"github.com/aesopov/dlist/internal/blockcache"
)

// ErrBlockNotFound and ErrBadOffset are returned by BlockLog's lookups, not
// by the core dlist engine itself: the core's out-of-range contract is
// "not found"/no-op, and this layer translates that into named errors
// before it becomes an HTTP status.
var (
	ErrBlockNotFound = errors.New("block not found")
	ErrBadOffset     = errors.New("offset out of range")
)

// block is one entry in the log: a content fingerprint (blake3, echoing
// ues-lite's content-addressed-block domain without its IPFS/CID
// machinery) alongside the raw bytes.
type block struct {
	data        []byte
	fingerprint string
}

func newBlock(data []byte) block {
	sum := blake3.Sum256(data)
	return block{data: data, fingerprint: hex.EncodeToString(sum[:])}
}

var blockMeasurer = dlist.FuncMeasurer[block, int]{
	NilFunc:     func() int { return 0 },
	MeasureFunc: func(b block) int { return len(b.data) },
}

// cachedBlock is what blockcache stores: a block plus the ordinal index
// and byte offset it was looked up at, so a cache hit can answer ByIndex
// without touching the tree at all.
type cachedBlock struct {
	index  int
	offset int
	blk    block
}

func (c cachedBlock) ID() int { return c.index }

const defaultCacheCapacity = 256

// BlockLog wraps a single DList as an append-only, offset-addressed
// sequence of byte blocks: a text rope or the index half of a
// log-structured store, addressed both by ordinal index and by byte
// offset (GetByDistance). The core engine assumes external
// synchronization for concurrent access, so this mutex is that boundary,
// matching datastore/api/api.go's mutex-guarded handlers rather than
// adding concurrency to the core engine.
type BlockLog struct {
	mu    sync.RWMutex
	list  *dlist.DList[block, int]
	cache *blockcache.Cache
	m     *metrics
}

func NewBlockLog(m *metrics) *BlockLog {
	cache, _ := blockcache.New(defaultCacheCapacity) // defaultCacheCapacity > 0, never errors
	return &BlockLog{
		list:  dlist.New[block, int](blockMeasurer),
		cache: cache,
		m:     m,
	}
}

// Append adds data as a new block at the tail and returns its assigned
// index, byte offset, and content fingerprint.
func (b *BlockLog) Append(data []byte) (index int, offset int, fingerprint string) {
	defer b.observe("append", time.Now())

	b.mu.Lock()
	defer b.mu.Unlock()

	blk := newBlock(data)
	b.list.Append(blk)
	idx := b.list.Size() - 1
	item, _ := b.list.GetByIndex(idx)
	b.cache.Put(cachedBlock{index: idx, offset: item.OuterDistance, blk: blk})
	b.refreshLocked()
	return idx, item.OuterDistance, blk.fingerprint
}

// ByIndex returns the block at ordinal index, serving from the
// least-recently-used cache when the index was looked up recently. Append
// only ever extends the cache (indices before the new tail are stable);
// Delete invalidates it, since every index after the deleted one shifts.
func (b *BlockLog) ByIndex(index int) ([]byte, string, int, error) {
	defer b.observe("get_by_index", time.Now())

	b.mu.RLock()
	defer b.mu.RUnlock()

	if cached, ok := b.cache.Get(index); ok {
		c := cached.(cachedBlock)
		return c.blk.data, c.blk.fingerprint, c.offset, nil
	}

	item, ok := b.list.GetByIndex(index)
	if !ok {
		return nil, "", 0, ErrBlockNotFound
	}
	b.cache.Put(cachedBlock{index: index, offset: item.OuterDistance, blk: *item.Item})
	return item.Item.data, item.Item.fingerprint, item.OuterDistance, nil
}

// ByOffset returns the block whose byte range covers offset, alongside
// the offset into that block (InnerDistance).
func (b *BlockLog) ByOffset(offset int) (index int, data []byte, fingerprint string, innerOffset int, err error) {
	defer b.observe("get_by_distance", time.Now())

	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		return 0, nil, "", 0, ErrBadOffset
	}
	item, ok := b.list.GetByDistance(offset)
	if !ok {
		return 0, nil, "", 0, ErrBadOffset
	}
	return item.Index, item.Item.data, item.Item.fingerprint, item.InnerDistance, nil
}

// Delete removes the block at ordinal index. A no-op (mirroring the core
// engine's own contract) if index is out of range.
func (b *BlockLog) Delete(index int) {
	defer b.observe("delete", time.Now())

	b.mu.Lock()
	defer b.mu.Unlock()

	b.list.Delete(index)
	b.cache.Reset()
	b.refreshLocked()
}

// Stats returns the current block count and total byte length.
func (b *BlockLog) Stats() (size int, length int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.list.Size(), b.list.Length()
}

// Each calls fn for every block in ordinal order, used by /export. fn must
// not mutate the BlockLog.
func (b *BlockLog) Each(fn func(index, offset int, blk block)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := 0; i < b.list.Size(); i++ {
		item, ok := b.list.GetByIndex(i)
		if !ok {
			return
		}
		fn(i, item.OuterDistance, *item.Item)
	}
}

func (b *BlockLog) refreshLocked() {
	if b.m != nil {
		b.m.refresh(b.list.Size(), b.list.Length())
	}
}

func (b *BlockLog) observe(op string, start time.Time) {
	if b.m != nil {
		b.m.observe(op, start)
	}
}

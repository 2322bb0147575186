// Package blockcache is a small least-recently-used cache keyed by
// integer ID, used in front of the dlistd block log so repeat reads of
// hot blocks skip a tree descent.
package blockcache

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidSize is returned if the cache size is not positive.
	ErrInvalidSize = errors.New("invalid cache size")
	// ErrItemNotFound is returned when an ID is not in the cache.
	ErrItemNotFound = errors.New("item id not found")
)

// Cacheable implements an ID method for use as a map key.
type Cacheable interface {
	ID() int
}

// Cache is a least-recently-used cache over Cacheable items.
type Cache struct {
	mu       sync.Mutex
	itemMap  map[int]*entry
	itemList *lruList
	capacity int
}

// New initializes a cache of the given capacity.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, ErrInvalidSize
	}
	return &Cache{
		itemMap:  make(map[int]*entry, capacity),
		itemList: newLRUList(),
		capacity: capacity,
	}, nil
}

// Put inserts or refreshes item, evicting the least-recently-used entries
// over capacity.
func (c *Cache) Put(item Cacheable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.itemMap[item.ID()]; ok {
		existing.item = item
		c.itemList.rotateFront(existing)
		return
	}

	n := &entry{item: item}
	c.itemList.prepend(n)
	c.itemMap[item.ID()] = n

	evicted := c.itemList.trimRight(c.capacity)
	for evicted != nil {
		next := evicted.next
		delete(c.itemMap, evicted.item.ID())
		evicted.next = nil
		evicted = next
	}
}

// Get returns the item for id, rotating it to the front on a hit. The
// lookup and the rotate happen under one Lock: a hit always mutates list
// order, so splitting this into an RLock-then-Lock pair would let a Put
// or Reset land in between and rotate a now-stale or already-freed entry.
func (c *Cache) Get(id int) (item Cacheable, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target, found := c.itemMap[id]
	if !found {
		return nil, false
	}
	c.itemList.rotateFront(target)
	return target.item, true
}

// Remove evicts id from the cache, if present.
func (c *Cache) Remove(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	target, ok := c.itemMap[id]
	if !ok {
		return ErrItemNotFound
	}
	c.itemList.remove(target)
	delete(c.itemMap, id)
	return nil
}

// Reset empties the cache, used after a mutation invalidates offsets.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemMap = make(map[int]*entry, c.capacity)
	c.itemList = newLRUList()
}

type entry struct {
	next, prev *entry
	item       Cacheable
}

type lruList struct {
	head, tail *entry
	count      int
}

func newLRUList() *lruList {
	return &lruList{}
}

func (l *lruList) prepend(n *entry) {
	if l.head == nil {
		l.head, l.tail = n, n
		n.prev, n.next = nil, nil
		l.count = 1
		return
	}
	n.next = l.head
	l.head.prev = n
	l.head = n
	l.count++
}

func (l *lruList) rotateFront(target *entry) {
	if target == l.head {
		return
	}
	l.remove(target)
	l.prepend(target)
}

// trimRight removes entries past the first n and returns the head of the
// evicted chain (linked via .next), or nil if under capacity.
func (l *lruList) trimRight(n int) *entry {
	if l.count <= n {
		return nil
	}

	keep := l.head
	for i := 1; i < n; i++ {
		keep = keep.next
	}
	evicted := keep.next
	keep.next = nil
	l.tail = keep
	l.count = n
	if evicted != nil {
		evicted.prev = nil
	}
	return evicted
}

func (l *lruList) remove(target *entry) {
	switch {
	case target.prev == nil && target.next == nil:
		l.head, l.tail = nil, nil
	case target.prev == nil:
		l.head = target.next
		l.head.prev = nil
	case target.next == nil:
		l.tail = target.prev
		l.tail.next = nil
	default:
		target.prev.next = target.next
		target.next.prev = target.prev
	}
	target.prev, target.next = nil, nil
	l.count--
}

// Package dlist implements a distance-indexed ordered list: a sequence
// addressable both by ordinal index (insertion order) and by cumulative
// distance (a weighted prefix-sum lookup), backed by a height-balanced
// (AVL) binary tree carrying per-subtree count and measure aggregates.
//
// All five operations below (positional insert, positional delete,
// append, and the two lookups) run in O(log n). The weight of each
// element comes from a caller-supplied Measurer; see measurer.go for the
// built-in ones.
package dlist

// DList owns an optional tree root and the measurer used to weigh its
// elements. The zero value is not usable; construct one with New.
type DList[V any, M Measure] struct {
	root     *node[V, M]
	measurer Measurer[V, M]
}

// New returns an empty DList weighing elements with measurer.
func New[V any, M Measure](measurer Measurer[V, M]) *DList[V, M] {
	return &DList[V, M]{measurer: measurer}
}

// Insert places value at ordinal index, shifting prior occupants of
// [index, Size()) up by one. index > Size() is clamped to append rather
// than rejected.
func (d *DList[V, M]) Insert(index int, value V) {
	if d.root == nil {
		d.root = newLeaf(value, d.measurer)
		return
	}
	d.root = insertNode(d.root, index, value, d.measurer)
}

// Append inserts value at the tail. Equivalent to Insert(Size(), value).
func (d *DList[V, M]) Append(value V) {
	d.Insert(d.Size(), value)
}

// Size returns the number of stored elements.
func (d *DList[V, M]) Size() int {
	return totalCount(d.root)
}

// Length returns the sum of every stored element's measure.
func (d *DList[V, M]) Length() M {
	return totalLength(d.root, d.measurer)
}

// GetByIndex returns the element at ordinal index, or ok=false if the
// list is empty or index is out of range. The returned ItemView aliases
// the tree and is invalidated by the next mutating call.
func (d *DList[V, M]) GetByIndex(index int) (item ItemView[V, M], ok bool) {
	if d.root == nil {
		return ItemView[V, M]{}, false
	}
	return searchByIndex(d.root, index, d.measurer)
}

// GetByDistance returns the first element whose half-open measure range
// [OuterDistance, OuterDistance+measure) contains distance, or ok=false
// if the list is empty or distance is at or beyond Length(). A distance
// equal to the measurer's Nil always returns the element at index 0, even
// when that element's measure is zero. The returned
// ItemView aliases the tree and is invalidated by the next mutating call.
func (d *DList[V, M]) GetByDistance(distance M) (item ItemView[V, M], ok bool) {
	if d.root == nil {
		return ItemView[V, M]{}, false
	}
	return searchByDistance(d.root, distance, d.measurer)
}

// Delete removes the element at ordinal index. A no-op if the list is
// empty or index is out of range.
func (d *DList[V, M]) Delete(index int) {
	if d.root == nil {
		return
	}
	d.root = deleteNode(d.root, index, d.measurer)
}

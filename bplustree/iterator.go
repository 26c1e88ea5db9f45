package bplustree

import "iter"

// Range returns a lazy sequence of (key, value) pairs with
// lo <= key <= hi, found by seeking to the leaf that would contain lo
// and then scanning forward through the leaf chain until a key exceeds
// hi.
func (t *BPlusTree[K, V]) Range(lo, hi K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root == nil {
			return
		}
		n := t.descendToLeaf(lo)
		for n != nil {
			for i, k := range n.keys {
				if k < lo {
					continue
				}
				if k > hi {
					return
				}
				if !yield(k, n.values[i]) {
					return
				}
			}
			n = n.next
		}
	}
}

// ScanAll returns a lazy sequence of every (key, value) pair in the
// tree, in ascending key order, by walking the leaf chain from the
// leftmost leaf.
func (t *BPlusTree[K, V]) ScanAll() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root == nil {
			return
		}
		n := t.root
		for !n.leaf {
			n = n.children[0]
		}
		for n != nil {
			for i, k := range n.keys {
				if !yield(k, n.values[i]) {
					return
				}
			}
			n = n.next
		}
	}
}

// Len reports the number of entries currently stored, by walking the
// leaf chain. It is O(n); callers on a hot path should prefer tracking
// their own count (table.Table does, via its row list).
func (t *BPlusTree[K, V]) Len() int {
	n := 0
	for range t.ScanAll() {
		n++
	}
	return n
}

package bplustree

import "cmp"

// NodeView is a read handle onto a tree node, exposing the surface the
// visualiser collaborator needs (spec.md §6): whether the node is a
// leaf, its keys, its values, its children, and — for leaves — the
// sibling link. Keys and Values return slices that alias the tree's
// internal storage; NodeView does not copy them.
type NodeView[K cmp.Ordered, V any] struct {
	n *node[K, V]
}

// Root returns a view of the tree's root node. It reports
// Valid() == false only before the first Insert; a tree emptied by
// Delete keeps an empty leaf as its root.
func (t *BPlusTree[K, V]) Root() NodeView[K, V] {
	return NodeView[K, V]{n: t.root}
}

// Valid reports whether the view points at a real node.
func (v NodeView[K, V]) Valid() bool {
	return v.n != nil
}

// IsLeaf reports whether the viewed node is a leaf.
func (v NodeView[K, V]) IsLeaf() bool {
	return v.n.leaf
}

// Keys returns the node's keys in order. The returned slice aliases the
// tree's internal storage and must be treated as read-only.
func (v NodeView[K, V]) Keys() []K {
	return v.n.keys
}

// Values returns the node's values, valid only when IsLeaf() is true.
// The returned slice aliases the tree's internal storage and must be
// treated as read-only.
func (v NodeView[K, V]) Values() []V {
	return v.n.values
}

// Children returns views of the node's children, valid only when
// IsLeaf() is false.
func (v NodeView[K, V]) Children() []NodeView[K, V] {
	out := make([]NodeView[K, V], len(v.n.children))
	for i, c := range v.n.children {
		out[i] = NodeView[K, V]{n: c}
	}
	return out
}

// Next returns a view of the next leaf in the sibling chain, valid only
// when IsLeaf() is true, and whether one exists.
func (v NodeView[K, V]) Next() (NodeView[K, V], bool) {
	if v.n.next == nil {
		return NodeView[K, V]{}, false
	}
	return NodeView[K, V]{n: v.n.next}, true
}

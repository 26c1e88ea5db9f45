// Package visualize renders a bplustree.BPlusTree as Graphviz DOT text,
// the Go-native analogue of original_source/database/tree_visualizer.py
// (which used the Python graphviz binding to draw the same structure).
// No complete example repo in the retrieval pack imports a Graphviz Go
// client with a real call site to ground that specific dependency on,
// so DOT is emitted as plain text here (see DESIGN.md); a caller can
// pipe it through the `dot` binary or any DOT-aware viewer itself.
package visualize

import (
	"cmp"
	"fmt"
	"strings"

	"bplusdb/bplustree"
)

// DOT walks tree via its read-only NodeView accessors and renders a
// Graphviz digraph: one record-shaped node per tree node, solid edges
// for parent-child links, and dashed edges tracing the leaf chain —
// the same two edge kinds original_source's _add_nodes/_add_edges drew.
func DOT[K cmp.Ordered, V any](tree *bplustree.BPlusTree[K, V]) string {
	var b strings.Builder
	b.WriteString("digraph BPlusTree {\n  node [shape=record];\n")

	root := tree.Root()
	if !root.Valid() {
		b.WriteString("  empty [label=\"empty tree\"];\n}\n")
		return b.String()
	}

	ids := map[any]string{}
	n := 0
	nodeID := func(v bplustree.NodeView[K, V]) string {
		if id, ok := ids[v]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", n)
		n++
		ids[v] = id
		return id
	}

	var walkNodes func(v bplustree.NodeView[K, V])
	walkNodes = func(v bplustree.NodeView[K, V]) {
		id := nodeID(v)
		b.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", id, label(v)))
		if !v.IsLeaf() {
			for _, c := range v.Children() {
				walkNodes(c)
			}
		}
	}
	walkNodes(root)

	var walkEdges func(v bplustree.NodeView[K, V])
	walkEdges = func(v bplustree.NodeView[K, V]) {
		id := nodeID(v)
		if v.IsLeaf() {
			if next, ok := v.Next(); ok {
				b.WriteString(fmt.Sprintf("  %s -> %s [style=dashed,color=blue];\n", id, nodeID(next)))
			}
			return
		}
		for _, c := range v.Children() {
			b.WriteString(fmt.Sprintf("  %s -> %s;\n", id, nodeID(c)))
			walkEdges(c)
		}
	}
	walkEdges(root)

	b.WriteString("}\n")
	return b.String()
}

func label[K cmp.Ordered, V any](v bplustree.NodeView[K, V]) string {
	if v.IsLeaf() {
		parts := make([]string, len(v.Keys()))
		vals := v.Values()
		for i, k := range v.Keys() {
			parts[i] = fmt.Sprintf("%v: %v", k, vals[i])
		}
		return strings.Join(parts, " | ")
	}
	parts := make([]string, len(v.Keys()))
	for i, k := range v.Keys() {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, " | ")
}

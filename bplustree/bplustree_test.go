package bplustree

import (
	"cmp"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// collectAll materializes ScanAll for assertions that want a slice.
func collectAll[K cmp.Ordered, V any](t *BPlusTree[K, V]) []K {
	var keys []K
	for k := range t.ScanAll() {
		keys = append(keys, k)
	}
	return keys
}

// S1: empty tree.
func TestEmptyTree(t *testing.T) {
	tr := New[int, string](3)
	_, ok := tr.Search(5)
	assert.False(t, ok)

	var got []int
	for k := range tr.Range(0, 10) {
		got = append(got, k)
	}
	assert.Empty(t, got)
}

// S2: insert 5,10,15,20,25 in order, check split + scan/search/range.
func TestInsertOrderedRunSplits(t *testing.T) {
	tr := New[int, string](3)
	for _, k := range []int{5, 10, 15, 20, 25} {
		tr.Insert(k, fmt.Sprintf("v%d", k))
	}

	assert.False(t, tr.root.leaf, "root must have split")

	wantKeys := []int{5, 10, 15, 20, 25}
	assert.Equal(t, wantKeys, collectAll(tr))

	v, ok := tr.Search(15)
	assert.True(t, ok)
	assert.Equal(t, "v15", v)

	var rangeKeys []int
	for k := range tr.Range(10, 20) {
		rangeKeys = append(rangeKeys, k)
	}
	assert.Equal(t, []int{10, 15, 20}, rangeKeys)
}

// S3: starting from S2, delete 5, 25, 10 in order; check invariants hold
// after each delete and the final scan matches.
func TestDeleteSequenceMaintainsInvariants(t *testing.T) {
	tr := New[int, string](3)
	for _, k := range []int{5, 10, 15, 20, 25} {
		tr.Insert(k, fmt.Sprintf("v%d", k))
	}

	for _, k := range []int{5, 25, 10} {
		ok := tr.Delete(k)
		assert.True(t, ok)
		assertInvariants(t, tr)
	}

	assert.Equal(t, []int{15, 20}, collectAll(tr))
}

// S4: insert 1..20 (m=5), delete even keys ascending; final scan is the
// 10 odd keys in order, depth stays shallow.
func TestInsertThenDeleteEvens(t *testing.T) {
	tr := New[int, int](5)
	for i := 1; i <= 20; i++ {
		tr.Insert(i, i*i)
	}
	for i := 2; i <= 20; i += 2 {
		ok := tr.Delete(i)
		assert.True(t, ok)
		assertInvariants(t, tr)
	}

	var want []int
	for i := 1; i <= 20; i += 2 {
		want = append(want, i)
	}
	assert.Equal(t, want, collectAll(tr))
	assert.LessOrEqual(t, depth(tr), 3)
}

// Property 9: delete(k); delete(k) leaves the second call reporting
// absent with the scanned contents unchanged.
func TestDeleteIsIdempotent(t *testing.T) {
	tr := New[int, string](3)
	for _, k := range []int{1, 2, 3, 4, 5} {
		tr.Insert(k, "x")
	}

	ok := tr.Delete(3)
	assert.True(t, ok)
	before := collectAll(tr)

	ok = tr.Delete(3)
	assert.False(t, ok)
	after := collectAll(tr)

	assert.Equal(t, before, after)
}

// Property 5: search(k) returns a value iff k appears in scan_all().
func TestSearchScanAgreement(t *testing.T) {
	for _, order := range []int{3, 4, 5, 8, 32} {
		tr := New[int, int](order)
		present := map[int]bool{}
		rnd := rand.New(rand.NewSource(int64(order)))
		for i := 0; i < 200; i++ {
			k := rnd.Intn(500)
			tr.Insert(k, k)
			present[k] = true
		}

		scanned := map[int]bool{}
		for k := range tr.ScanAll() {
			scanned[k] = true
		}
		assert.Equal(t, present, scanned)

		for k := range present {
			_, ok := tr.Search(k)
			assert.True(t, ok)
		}
		_, ok := tr.Search(-1)
		assert.False(t, ok)
	}
}

// Property 6: range(lo, hi) equals the filter of scan_all() in that
// window, in order.
func TestRangeMatchesFilteredScan(t *testing.T) {
	tr := New[int, int](4)
	for i := 0; i < 100; i++ {
		tr.Insert(i, i)
	}

	var want []int
	for i := 0; i < 100; i++ {
		if i >= 30 && i <= 60 {
			want = append(want, i)
		}
	}

	var got []int
	for k := range tr.Range(30, 60) {
		got = append(got, k)
	}
	assert.Equal(t, want, got)
}

// Randomized mixed-workload invariant check across the orders named in
// spec.md §8.
func TestRandomizedWorkloadInvariants(t *testing.T) {
	for _, order := range []int{3, 4, 5, 8, 32} {
		t.Run(fmt.Sprintf("order=%d", order), func(t *testing.T) {
			seed := int64(1000 + order)
			rnd := rand.New(rand.NewSource(seed))
			tr := New[int, int](order)
			ref := map[int]int{}

			for i := 0; i < 2000; i++ {
				k := rnd.Intn(300)
				switch rnd.Intn(3) {
				case 0, 2:
					// BPlusTree.Insert never dedupes (spec.md §4.1: a
					// duplicate key appends rather than replaces), so the
					// workload must not insert a key already present —
					// exactly the uniqueness guarantee Table enforces
					// before it ever calls Insert.
					if _, exists := ref[k]; !exists {
						tr.Insert(k, k)
						ref[k] = k
					}
				case 1:
					ok := tr.Delete(k)
					_, inRef := ref[k]
					assert.Equal(t, inRef, ok)
					delete(ref, k)
				}
			}

			assertInvariants(t, tr)

			got := map[int]int{}
			for k, v := range tr.ScanAll() {
				got[k] = v
			}
			assert.Equal(t, ref, got)
		})
	}
}

func TestUpdateOverwritesInPlace(t *testing.T) {
	tr := New[int, string](3)
	tr.Insert(1, "a")
	tr.Insert(2, "b")

	ok := tr.Update(1, "a2")
	assert.True(t, ok)
	v, _ := tr.Search(1)
	assert.Equal(t, "a2", v)

	ok = tr.Update(99, "x")
	assert.False(t, ok)
}

// --- invariant checking helpers (properties 1, 2, 3, 4) ---

func depth[K cmp.Ordered, V any](t *BPlusTree[K, V]) int {
	n := t.root
	d := 0
	for n != nil && !n.leaf {
		d++
		n = n.children[0]
	}
	return d
}

func minKeyOf[K cmp.Ordered, V any](n *node[K, V]) K {
	for !n.leaf {
		n = n.children[0]
	}
	return n.keys[0]
}

func assertInvariants[K cmp.Ordered, V any](t *testing.T, tr *BPlusTree[K, V]) {
	t.Helper()
	if tr.root == nil {
		return
	}

	leafDepths := map[int]bool{}
	var walk func(n *node[K, V], d int, isRoot bool)
	walk = func(n *node[K, V], d int, isRoot bool) {
		for i := 1; i < len(n.keys); i++ {
			assert.True(t, n.keys[i-1] < n.keys[i], "keys must be strictly increasing")
		}

		min := tr.minKeys()
		if !isRoot {
			assert.GreaterOrEqual(t, len(n.keys), min, "non-root node underflowed")
			assert.LessOrEqual(t, len(n.keys), tr.order-1, "node overflowed")
		} else {
			assert.LessOrEqual(t, len(n.keys), tr.order-1, "root overflowed")
		}

		if n.leaf {
			leafDepths[d] = true
			return
		}

		assert.Equal(t, len(n.keys)+1, len(n.children), "internal node child count")
		for i, sep := range n.keys {
			assert.Equal(t, sep, minKeyOf(n.children[i+1]), "separator must equal min key of right subtree")
		}
		for _, c := range n.children {
			walk(c, d+1, false)
		}
	}
	walk(tr.root, 0, true)
	assert.LessOrEqual(t, len(leafDepths), 1, "all leaves must be at equal depth")

	// Leaf-list traversal yields ascending keys with no duplicates.
	leaf := tr.root
	for !leaf.leaf {
		leaf = leaf.children[0]
	}
	var prev K
	first := true
	for leaf != nil {
		for _, k := range leaf.keys {
			if !first {
				assert.True(t, prev < k, "leaf chain must be strictly ascending")
			}
			prev = k
			first = false
		}
		leaf = leaf.next
	}
}

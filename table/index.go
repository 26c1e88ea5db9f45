package table

import (
	"cmp"
	"iter"

	"bplusdb/bplustree"
)

// index is the PK-keyed storage behind a Table: one bplustree.BPlusTree
// instantiated on the concrete Go type matching the PK column's Kind
// (spec.md §3: "keys ... of a single logical type per tree"), wrapped so
// Table itself only ever deals in the Value variant.
type index interface {
	Insert(pk Value, row Row)
	Search(pk Value) (Row, bool)
	Update(pk Value, row Row) bool
	Delete(pk Value) bool
	ScanAll() iter.Seq2[Value, Row]
	Range(lo, hi Value) iter.Seq2[Value, Row]
	Order() int
	SetObserver(obs bplustree.Observer[Value])
}

// valueIndex adapts a BPlusTree[K, Row] to the Value-keyed index
// interface via a pair of pure conversion functions. A single generic
// implementation covers all four PK kinds; only the conversion functions
// and the concrete K differ per kind.
type valueIndex[K cmp.Ordered] struct {
	tree    *bplustree.BPlusTree[K, Row]
	toKey   func(Value) K
	fromKey func(K) Value
	// observer is the Value-keyed observer most recently passed to
	// SetObserver (nil if none or cleared).
	observer bplustree.Observer[Value]
}

func newIndex[K cmp.Ordered](order int, toKey func(Value) K, fromKey func(K) Value) *valueIndex[K] {
	return &valueIndex[K]{
		tree:    bplustree.New[K, Row](order),
		toKey:   toKey,
		fromKey: fromKey,
	}
}

func (vi *valueIndex[K]) Insert(pk Value, row Row) {
	vi.tree.Insert(vi.toKey(pk), row)
}

func (vi *valueIndex[K]) Search(pk Value) (Row, bool) {
	return vi.tree.Search(vi.toKey(pk))
}

func (vi *valueIndex[K]) Update(pk Value, row Row) bool {
	return vi.tree.Update(vi.toKey(pk), row)
}

func (vi *valueIndex[K]) Delete(pk Value) bool {
	return vi.tree.Delete(vi.toKey(pk))
}

func (vi *valueIndex[K]) Order() int {
	return vi.tree.Order()
}

func (vi *valueIndex[K]) ScanAll() iter.Seq2[Value, Row] {
	return func(yield func(Value, Row) bool) {
		for k, row := range vi.tree.ScanAll() {
			if !yield(vi.fromKey(k), row) {
				return
			}
		}
	}
}

func (vi *valueIndex[K]) Range(lo, hi Value) iter.Seq2[Value, Row] {
	return func(yield func(Value, Row) bool) {
		for k, row := range vi.tree.Range(vi.toKey(lo), vi.toKey(hi)) {
			if !yield(vi.fromKey(k), row) {
				return
			}
		}
	}
}

func (vi *valueIndex[K]) SetObserver(obs bplustree.Observer[Value]) {
	vi.observer = obs
	if obs == nil {
		vi.tree.SetObserver(nil)
		return
	}
	vi.tree.SetObserver(valueObserverAdapter[K]{fromKey: vi.fromKey, sink: obs})
}

// valueObserverAdapter re-tags a concrete-keyed Event as a Value-keyed
// one, so a single visualiser observer can watch any table regardless of
// its PK kind.
type valueObserverAdapter[K cmp.Ordered] struct {
	fromKey func(K) Value
	sink    bplustree.Observer[Value]
}

func (a valueObserverAdapter[K]) Observe(e bplustree.Event[K]) {
	a.sink.Observe(bplustree.Event[Value]{
		Kind: e.Kind,
		Key:  a.fromKey(e.Key),
		Leaf: e.Leaf,
		Side: e.Side,
	})
}

func newIndexForKind(kind Kind, order int) index {
	switch kind {
	case KindInt:
		return newIndex[int64](order,
			func(v Value) int64 { return v.Int() },
			func(k int64) Value { return IntValue(k) })
	case KindFloat:
		return newIndex[float64](order,
			func(v Value) float64 { return v.Float() },
			func(k float64) Value { return FloatValue(k) })
	case KindStr:
		return newIndex[string](order,
			func(v Value) string { return v.Str() },
			func(k string) Value { return StrValue(k) })
	case KindBool:
		// bool isn't an ordered Go type; encode it as int8 (0/1) for the
		// tree's key type while the Table still only ever sees Value.
		return newIndex[int8](order,
			func(v Value) int8 {
				if v.Bool() {
					return 1
				}
				return 0
			},
			func(k int8) Value { return BoolValue(k != 0) })
	default:
		panic("table: unknown primary key kind")
	}
}

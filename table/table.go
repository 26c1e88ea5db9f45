// Package table implements the schema-validating, primary-key-unique
// row store that sits on top of one bplustree.BPlusTree index
// (spec.md §4.2).
package table

import (
	"fmt"

	"bplusdb/bplustree"
	"bplusdb/common"
	"bplusdb/dberr"
)

// Row maps column name to cell value.
type Row map[string]Value

// Clone returns a shallow copy of the row (Values are immutable, so a
// shallow copy is a full copy for our purposes).
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Column is one schema entry. Schema is kept as an ordered slice (not a
// map) so column order — and therefore JSON snapshot field order — is
// preserved, per spec.md §6's "insertion order preserved" note.
type Column struct {
	Name string
	Kind Kind
}

// DefaultOrder is the B+ tree order new tables build their PK index
// with when the caller doesn't specify one via NewWithOrder.
const DefaultOrder = 5

// Table owns a schema, a primary key column, a PK-keyed index, and a
// row list in insertion order (spec.md §3, §4.2). Len counts the row
// list; database snapshots are written from SelectAll, so saved rows
// are in PK order, not insertion order.
type Table struct {
	Name       string
	schema     []Column
	kindOf     map[string]Kind
	primaryKey string
	idx        index
	rows       []Row
}

// New constructs a Table, failing if primaryKey is not a column in
// schema (spec.md §4.2).
func New(name string, schema []Column, primaryKey string) (*Table, error) {
	return NewWithOrder(name, schema, primaryKey, DefaultOrder)
}

// NewWithOrder is New with an explicit B+ tree order for the PK index.
func NewWithOrder(name string, schema []Column, primaryKey string, order int) (*Table, error) {
	kindOf := make(map[string]Kind, len(schema))
	for _, c := range schema {
		kindOf[c.Name] = c.Kind
	}
	pkKind, ok := kindOf[primaryKey]
	if !ok {
		return nil, dberr.Violation(fmt.Sprintf("table %s: primary key %q not in schema", name, primaryKey))
	}

	return &Table{
		Name:       name,
		schema:     append([]Column(nil), schema...),
		kindOf:     kindOf,
		primaryKey: primaryKey,
		idx:        newIndexForKind(pkKind, order),
	}, nil
}

// Schema returns the table's columns in declared order.
func (t *Table) Schema() []Column { return append([]Column(nil), t.schema...) }

// PrimaryKey returns the PK column name.
func (t *Table) PrimaryKey() string { return t.primaryKey }

// SetObserver installs (or, with nil, clears) the observer notified of
// structural changes to the table's underlying PK index, regardless of
// the index's concrete key kind (spec.md §6's visualiser interface).
func (t *Table) SetObserver(obs bplustree.Observer[Value]) {
	t.idx.SetObserver(obs)
}

// IndexOrder returns the B+ tree order backing the table's PK index.
func (t *Table) IndexOrder() int {
	return t.idx.Order()
}

// validate checks row against the schema: every declared column must be
// present with a value matching its declared Kind (int accepted where
// float is declared), and no undeclared columns may be present.
func (t *Table) validate(row Row) error {
	for _, c := range t.schema {
		v, ok := row[c.Name]
		if !ok {
			return dberr.Violation(fmt.Sprintf("column %q missing from row", c.Name))
		}
		if v.Kind() != c.Kind && !(c.Kind == KindFloat && v.Kind() == KindInt) {
			return dberr.Violation(fmt.Sprintf("column %q: expected %s, got %s", c.Name, c.Kind, v.Kind()))
		}
	}
	for name := range row {
		if _, ok := t.kindOf[name]; !ok {
			return dberr.Violation(fmt.Sprintf("column %q not in schema", name))
		}
	}
	return nil
}

// Insert validates row against the schema and inserts it, keyed by its
// primary key value. It fails with ErrSchemaViolation if the row doesn't
// match the schema, or ErrDuplicateKey if the PK value is already
// present.
func (t *Table) Insert(row Row) error {
	if err := t.validate(row); err != nil {
		return err
	}
	pk := row[t.primaryKey]
	if _, exists := t.idx.Search(pk); exists {
		return fmt.Errorf("table %s: %w", t.Name, dberr.Duplicate(pk.Any()))
	}

	t.idx.Insert(pk, row)
	t.rows = append(t.rows, row)
	return nil
}

// Select looks up a single row by primary key.
func (t *Table) Select(pk Value) (Row, bool) {
	return t.idx.Search(pk)
}

// SelectRange returns every row whose PK is in [lo, hi], in PK order.
func (t *Table) SelectRange(lo, hi Value) []Row {
	var out []Row
	for _, row := range t.idx.Range(lo, hi) {
		out = append(out, row)
	}
	return out
}

// SelectAll returns every row, in PK order.
func (t *Table) SelectAll() []Row {
	out := make([]Row, 0, len(t.rows))
	for _, row := range t.idx.ScanAll() {
		out = append(out, row)
	}
	return out
}

// Update applies patch on top of the current row for pk. If patch
// changes the primary key value, the new key's uniqueness is checked
// before anything is mutated (spec.md §9's preferred re-design for the
// PK-change race: no window exists where the old row is gone and the
// new one has been rejected).
func (t *Table) Update(pk Value, patch Row) error {
	current, ok := t.idx.Search(pk)
	if !ok {
		return fmt.Errorf("table %s: %w", t.Name, dberr.NotFound(fmt.Sprintf("primary key %v", pk.Any())))
	}

	candidate := current.Clone()
	for k, v := range patch {
		candidate[k] = v
	}
	if err := t.validate(candidate); err != nil {
		return err
	}

	newPK := candidate[t.primaryKey]
	if newPK.Compare(pk) != 0 {
		if _, exists := t.idx.Search(newPK); exists {
			return fmt.Errorf("table %s: %w", t.Name, dberr.Duplicate(newPK.Any()))
		}
		// Uniqueness of the new key is already confirmed: it is now
		// safe to retire the old entry and install the new one.
		t.idx.Delete(pk)
		t.idx.Insert(newPK, candidate)
		t.replaceRow(pk, candidate)
		return nil
	}

	t.idx.Update(pk, candidate)
	t.replaceRow(pk, candidate)
	return nil
}

func (t *Table) replaceRow(oldPK Value, newRow Row) {
	for i, r := range t.rows {
		if r[t.primaryKey].Compare(oldPK) == 0 {
			t.rows[i] = newRow
			return
		}
	}
	// Every key present in the index must also be present in rows; the
	// two are always mutated together. Reaching here means that
	// invariant has already broken somewhere else.
	common.Assert(false, "table %s: rows missing entry for primary key %v known to the index", t.Name, oldPK.Any())
}

// Delete removes the row for pk, reporting whether it was present.
func (t *Table) Delete(pk Value) bool {
	if !t.idx.Delete(pk) {
		return false
	}
	for i, r := range t.rows {
		if r[t.primaryKey].Compare(pk) == 0 {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of rows in the table.
func (t *Table) Len() int { return len(t.rows) }

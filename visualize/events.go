package visualize

import (
	"fmt"
	"io"

	"bplusdb/bplustree"
	"bplusdb/table"
)

// EventLog is an bplustree.Observer[table.Value] that renders each
// structural event as a line of text, the Go-native analogue of
// original_source/database/tree_visualizer.py's step-by-step console
// narration of inserts/splits/merges. Attach it to a table with
// Table.SetObserver to watch its PK index evolve live.
type EventLog struct {
	w io.Writer
}

// NewEventLog returns an EventLog writing human-readable lines to w.
func NewEventLog(w io.Writer) *EventLog {
	return &EventLog{w: w}
}

// Observe implements bplustree.Observer[table.Value].
func (l *EventLog) Observe(e bplustree.Event[table.Value]) {
	where := "internal"
	if e.Leaf {
		where = "leaf"
	}
	switch e.Kind {
	case bplustree.EventSplit, bplustree.EventMerge, bplustree.EventBorrow:
		fmt.Fprintf(l.w, "%s: key=%v node=%s side=%s\n", e.Kind, e.Key.Any(), where, e.Side)
	default:
		fmt.Fprintf(l.w, "%s: key=%v node=%s\n", e.Kind, e.Key.Any(), where)
	}
}

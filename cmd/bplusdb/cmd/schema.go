package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"bplusdb/table"
)

// parseSchema parses "col:kind,col:kind,..." into a []table.Column.
func parseSchema(spec string) ([]table.Column, error) {
	var cols []table.Column
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.SplitN(field, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid column spec %q, want name:kind", field)
		}
		kind, err := table.ParseKind(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", parts[0], err)
		}
		cols = append(cols, table.Column{Name: strings.TrimSpace(parts[0]), Kind: kind})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("schema must declare at least one column")
	}
	return cols, nil
}

// parseRow parses "col=value,col=value,..." into a table.Row, typing
// each value according to the table's schema.
func parseRow(tb *table.Table, spec string) (table.Row, error) {
	kindOf := make(map[string]table.Kind)
	for _, c := range tb.Schema() {
		kindOf[c.Name] = c.Kind
	}

	row := make(table.Row)
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid field %q, want col=value", field)
		}
		name, raw := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		kind, ok := kindOf[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		v, err := parseValue(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		row[name] = v
	}
	return row, nil
}

// parsePK parses a single raw value against the kind of tb's primary
// key column, for subcommands
// that take a bare primary-key argument rather than a full row spec.
func parsePK(tb *table.Table, raw string) (table.Value, error) {
	kindOf := make(map[string]table.Kind)
	for _, c := range tb.Schema() {
		kindOf[c.Name] = c.Kind
	}
	kind, ok := kindOf[tb.PrimaryKey()]
	if !ok {
		return table.Value{}, fmt.Errorf("primary key column %q not in schema", tb.PrimaryKey())
	}
	return parseValue(kind, raw)
}

func parseValue(kind table.Kind, raw string) (table.Value, error) {
	switch kind {
	case table.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return table.Value{}, fmt.Errorf("invalid int %q", raw)
		}
		return table.IntValue(n), nil
	case table.KindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return table.Value{}, fmt.Errorf("invalid float %q", raw)
		}
		return table.FloatValue(n), nil
	case table.KindStr:
		return table.StrValue(raw), nil
	case table.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return table.Value{}, fmt.Errorf("invalid bool %q", raw)
		}
		return table.BoolValue(b), nil
	default:
		return table.Value{}, fmt.Errorf("unknown kind %v", kind)
	}
}

func formatRow(row table.Row) string {
	parts := make([]string, 0, len(row))
	for name, v := range row {
		parts = append(parts, fmt.Sprintf("%s=%v", name, v.Any()))
	}
	return strings.Join(parts, ", ")
}

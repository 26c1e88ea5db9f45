package database

import (
	"bytes"
	"encoding/json"
	"fmt"

	"bplusdb/dberr"
	"bplusdb/table"
)

// dbSnapshot is the JSON shape of data/<name>/db.json.
type dbSnapshot struct {
	Name   string                   `json:"name"`
	Tables map[string]tableSnapshot `json:"tables"`
}

// tableSnapshot is the JSON shape of one table inside a database
// snapshot (spec.md §6), with a custom Marshal/Unmarshal pair so the
// schema object's key order survives a save/load round trip — plain
// encoding/json sorts map keys alphabetically on the way out and drops
// order entirely on the way in.
type tableSnapshot struct {
	Name       string
	SchemaKeys []string
	Schema     map[string]string
	PrimaryKey string
	Rows       []map[string]any
}

func (ts tableSnapshot) MarshalJSON() ([]byte, error) {
	schemaJSON, err := marshalOrderedStringMap(ts.SchemaKeys, ts.Schema)
	if err != nil {
		return nil, err
	}
	rowsJSON, err := json.Marshal(ts.Rows)
	if err != nil {
		return nil, err
	}
	nameJSON, err := json.Marshal(ts.Name)
	if err != nil {
		return nil, err
	}
	pkJSON, err := json.Marshal(ts.PrimaryKey)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	buf.Write(nameJSON)
	buf.WriteString(`,"schema":`)
	buf.Write(schemaJSON)
	buf.WriteString(`,"primary_key":`)
	buf.Write(pkJSON)
	buf.WriteString(`,"rows":`)
	buf.Write(rowsJSON)
	buf.WriteString(`}`)
	return buf.Bytes(), nil
}

func (ts *tableSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string            `json:"name"`
		Schema     json.RawMessage   `json:"schema"`
		PrimaryKey string            `json:"primary_key"`
		Rows       []map[string]any  `json:"rows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	keys, schema, err := unmarshalOrderedStringMap(raw.Schema)
	if err != nil {
		return err
	}

	ts.Name = raw.Name
	ts.SchemaKeys = keys
	ts.Schema = schema
	ts.PrimaryKey = raw.PrimaryKey
	ts.Rows = raw.Rows
	return nil
}

// marshalOrderedStringMap renders keys in the given order as a JSON
// object, looking each value up in m.
func marshalOrderedStringMap(keys []string, m map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalOrderedStringMap decodes a JSON object of string->string
// while recording the key order it appeared in, via the token-level
// json.Decoder API (plain json.Unmarshal into a map discards order).
func unmarshalOrderedStringMap(data []byte) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("schema: expected JSON object")
	}

	var keys []string
	m := make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("schema: expected string key")
		}

		var val string
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
		m[key] = val
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, nil, err
	}
	return keys, m, nil
}

func toTableSnapshot(t *table.Table) tableSnapshot {
	schema := t.Schema()
	ts := tableSnapshot{
		Name:       t.Name,
		Schema:     make(map[string]string, len(schema)),
		SchemaKeys: make([]string, 0, len(schema)),
		PrimaryKey: t.PrimaryKey(),
	}
	for _, c := range schema {
		ts.Schema[c.Name] = c.Kind.String()
		ts.SchemaKeys = append(ts.SchemaKeys, c.Name)
	}

	rows := t.SelectAll()
	ts.Rows = make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		encoded := make(map[string]any, len(row))
		for col, v := range row {
			encoded[col] = v.Any()
		}
		ts.Rows = append(ts.Rows, encoded)
	}
	return ts
}

func fromTableSnapshot(ts tableSnapshot) (*table.Table, error) {
	schema := make([]table.Column, 0, len(ts.SchemaKeys))
	kindOf := make(map[string]table.Kind, len(ts.SchemaKeys))
	for _, name := range ts.SchemaKeys {
		kind, err := table.ParseKind(ts.Schema[name])
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", ts.Name, dberr.Violation(fmt.Sprintf("column %q: %v", name, err)))
		}
		schema = append(schema, table.Column{Name: name, Kind: kind})
		kindOf[name] = kind
	}

	tb, err := table.New(ts.Name, schema, ts.PrimaryKey)
	if err != nil {
		return nil, err
	}

	for _, rawRow := range ts.Rows {
		row := make(table.Row, len(rawRow))
		for col, raw := range rawRow {
			kind, ok := kindOf[col]
			if !ok {
				continue
			}
			v, ok := table.ValueFromAny(kind, raw)
			if !ok {
				return nil, fmt.Errorf("table %s: %w", ts.Name, dberr.Violation(fmt.Sprintf("column %q: value %v does not match declared type", col, raw)))
			}
			row[col] = v
		}
		if err := tb.Insert(row); err != nil {
			return nil, err
		}
	}
	return tb, nil
}

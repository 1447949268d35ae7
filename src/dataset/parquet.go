// Package dataset reads and writes the on-disk artifacts of a saved dataset:
// data.parquet for the rows and, through the schema package, schema.yaml for
// the descriptor.
package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/Andromeda227799/pandas-ai/src/schema"
	"github.com/parquet-go/parquet-go"
)

// Column is an ordered named column, the wire-level counterpart of a frame
// series.
type Column struct {
	Name   string
	Values []any
}

// WriteParquet serializes columns as a parquet file. The parquet schema is
// derived per column from the inferred dtype; every field is optional so nil
// values round-trip as nulls. Mixed columns are stored as strings.
func WriteParquet(w io.Writer, name string, cols []Column) error {
	if len(cols) == 0 {
		return errors.New("write parquet: no columns")
	}
	if name == "" {
		name = "dataset"
	}

	group := parquet.Group{}
	dtypes := make(map[string]string, len(cols))
	for _, col := range cols {
		dtype := schema.InferDtype(col.Values)
		dtypes[col.Name] = dtype
		group[col.Name] = parquet.Optional(nodeFor(dtype))
	}

	rows := rowMaps(cols, dtypes)
	writer := parquet.NewGenericWriter[map[string]any](w, parquet.NewSchema(name, group))
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet: %w", err)
	}
	return nil
}

// ReadParquet loads a parquet file back into columns. The order argument
// fixes column order (parquet groups sort fields by name); unknown names in
// order are ignored, and any file fields missing from order are appended
// alphabetically.
func ReadParquet(r io.ReaderAt, order []string) ([]Column, error) {
	// NewGenericReader cannot derive a parquet schema from a map type, so
	// read the file's own schema first and pass it explicitly.
	probe := parquet.NewReader(r)
	fileSchema := probe.Schema()
	_ = probe.Close()

	reader := parquet.NewGenericReader[map[string]any](r, fileSchema)
	defer reader.Close()

	n := int(reader.NumRows())
	rows := make([]map[string]any, 0, n)
	buf := make([]map[string]any, 64)
	for {
		// Read reconstructs rows into the buffer's maps, which must be
		// non-nil; the loop below hands rows off and nils the slots.
		for i := range buf {
			if buf[i] == nil {
				buf[i] = make(map[string]any)
			}
		}
		count, err := reader.Read(buf)
		for i := 0; i < count; i++ {
			rows = append(rows, buf[i])
			buf[i] = nil
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}

	fields := reader.Schema().Fields()
	names := orderedNames(fields, order)

	cols := make([]Column, len(names))
	for c, name := range names {
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = row[name]
		}
		cols[c] = Column{Name: name, Values: values}
	}
	return cols, nil
}

func orderedNames(fields []parquet.Field, order []string) []string {
	present := make(map[string]bool, len(fields))
	for _, f := range fields {
		present[f.Name()] = true
	}

	names := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, name := range order {
		if present[name] && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, f := range fields {
		if !seen[f.Name()] {
			names = append(names, f.Name())
		}
	}
	return names
}

func nodeFor(dtype string) parquet.Node {
	switch dtype {
	case "integer":
		return parquet.Int(64)
	case "float":
		return parquet.Leaf(parquet.DoubleType)
	case "boolean":
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// rowMaps pivots columns into per-row maps with values coerced to the
// storage type of their column.
func rowMaps(cols []Column, dtypes map[string]string) []map[string]any {
	n := 0
	if len(cols) > 0 {
		n = len(cols[0].Values)
	}

	rows := make([]map[string]any, n)
	for i := range rows {
		row := make(map[string]any, len(cols))
		for _, col := range cols {
			v := coerce(col.Values[i], dtypes[col.Name])
			if v != nil {
				row[col.Name] = v
			}
		}
		rows[i] = row
	}
	return rows
}

func coerce(v any, dtype string) any {
	if v == nil {
		return nil
	}
	switch dtype {
	case "integer":
		if i, ok := asInt64(v); ok {
			return i
		}
	case "float":
		if f, ok := asFloat64(v); ok {
			return f
		}
	case "boolean":
		if b, ok := v.(bool); ok {
			return b
		}
	case "string":
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fmt.Sprint(v)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		if i, ok := asInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

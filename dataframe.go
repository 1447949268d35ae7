package pandasai

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Series is a single named column of values.
type Series struct {
	Name   string
	Values []any
}

// DataFrame wraps ordered column data with dataset identity metadata and a
// lazily created conversation agent. Columns are positionally aligned: row i
// is the i-th value of every series.
type DataFrame struct {
	series []Series
	index  map[string]int

	// Path is the logical remote identifier in "<org>/<name>" form. It is
	// empty until the dataset has been saved.
	Path        string
	Name        string
	Description string
	Config      *Config

	columnHash string

	mu    sync.Mutex
	agent *Agent
}

// Option configures a DataFrame at construction time.
type Option func(*DataFrame)

// WithPath sets the logical dataset path ("<org>/<name>").
func WithPath(path string) Option {
	return func(d *DataFrame) { d.Path = path }
}

// WithName sets the dataset name.
func WithName(name string) Option {
	return func(d *DataFrame) { d.Name = name }
}

// WithDescription sets the dataset description.
func WithDescription(description string) Option {
	return func(d *DataFrame) { d.Description = description }
}

// WithConfig attaches a default chat configuration.
func WithConfig(cfg *Config) Option {
	return func(d *DataFrame) { d.Config = cfg }
}

// NewDataFrame builds a frame from ordered series. It validates the shape of
// the input but never restructures it: metadata is attached, data is not
// copied or coerced.
func NewDataFrame(series []Series, opts ...Option) (*DataFrame, error) {
	if len(series) == 0 {
		return nil, errors.New("dataframe requires at least one column")
	}

	index := make(map[string]int, len(series))
	rows := -1
	for i, s := range series {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
		if rows == -1 {
			rows = len(s.Values)
			continue
		}
		if len(s.Values) != rows {
			return nil, fmt.Errorf("column %q has %d values, want %d", name, len(s.Values), rows)
		}
	}

	d := &DataFrame{
		series: series,
		index:  index,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.columnHash = hashColumns(d.Columns())
	return d, nil
}

// hashColumns fingerprints a column-name set: MD5 over the sorted names so
// the digest is independent of column order.
func hashColumns(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(strings.Join(sorted, "|")))
	return hex.EncodeToString(sum[:])
}

// ColumnHash returns the stable 32-character hex fingerprint of the frame's
// column-name set, computed once at construction.
func (d *DataFrame) ColumnHash() string {
	return d.columnHash
}

// Columns returns the column names in declaration order.
func (d *DataFrame) Columns() []string {
	names := make([]string, len(d.series))
	for i, s := range d.series {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of rows.
func (d *DataFrame) Len() int {
	if len(d.series) == 0 {
		return 0
	}
	return len(d.series[0].Values)
}

// Column returns the series with the given name.
func (d *DataFrame) Column(name string) (Series, error) {
	i, ok := d.index[name]
	if !ok {
		return Series{}, &ColumnError{Column: name, Op: "select", Err: errors.New("no such column")}
	}
	return d.series[i], nil
}

// Row returns row i as a positional slice of values.
func (d *DataFrame) Row(i int) ([]any, error) {
	if i < 0 || i >= d.Len() {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, d.Len())
	}
	row := make([]any, len(d.series))
	for c, s := range d.series {
		row[c] = s.Values[i]
	}
	return row, nil
}

// Rows returns all rows in positional order.
func (d *DataFrame) Rows() [][]any {
	rows := make([][]any, d.Len())
	for i := range rows {
		rows[i], _ = d.Row(i)
	}
	return rows
}

// Head returns a new frame holding the first n rows and the same metadata.
func (d *DataFrame) Head(n int) *DataFrame {
	if n > d.Len() {
		n = d.Len()
	}
	if n < 0 {
		n = 0
	}
	series := make([]Series, len(d.series))
	for i, s := range d.series {
		series[i] = Series{Name: s.Name, Values: s.Values[:n]}
	}
	head, _ := NewDataFrame(series,
		WithPath(d.Path),
		WithName(d.Name),
		WithDescription(d.Description),
		WithConfig(d.Config),
	)
	return head
}

// Mean returns the arithmetic mean of a numeric column.
func (d *DataFrame) Mean(column string) (float64, error) {
	sum, count, err := d.fold(column, "mean")
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, &ColumnError{Column: column, Op: "mean", Err: errors.New("column is empty")}
	}
	return sum / float64(count), nil
}

// Sum returns the sum of a numeric column.
func (d *DataFrame) Sum(column string) (float64, error) {
	sum, _, err := d.fold(column, "sum")
	return sum, err
}

// Min returns the smallest value in a numeric column.
func (d *DataFrame) Min(column string) (float64, error) {
	return d.extreme(column, "min", func(a, b float64) bool { return b < a })
}

// Max returns the largest value in a numeric column.
func (d *DataFrame) Max(column string) (float64, error) {
	return d.extreme(column, "max", func(a, b float64) bool { return b > a })
}

func (d *DataFrame) fold(column, op string) (float64, int, error) {
	s, err := d.Column(column)
	if err != nil {
		return 0, 0, &ColumnError{Column: column, Op: op, Err: errors.New("no such column")}
	}
	var sum float64
	for i, v := range s.Values {
		f, ok := asFloat(v)
		if !ok {
			return 0, 0, &ColumnError{Column: column, Op: op, Err: fmt.Errorf("value %v at row %d is not numeric", v, i)}
		}
		sum += f
	}
	return sum, len(s.Values), nil
}

func (d *DataFrame) extreme(column, op string, better func(cur, cand float64) bool) (float64, error) {
	s, err := d.Column(column)
	if err != nil {
		return 0, &ColumnError{Column: column, Op: op, Err: errors.New("no such column")}
	}
	if len(s.Values) == 0 {
		return 0, &ColumnError{Column: column, Op: op, Err: errors.New("column is empty")}
	}
	var result float64
	for i, v := range s.Values {
		f, ok := asFloat(v)
		if !ok {
			return 0, &ColumnError{Column: column, Op: op, Err: fmt.Errorf("value %v at row %d is not numeric", v, i)}
		}
		if i == 0 || better(result, f) {
			result = f
		}
	}
	return result, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

package pandasai

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Andromeda227799/pandas-ai/src/dataset"
	"github.com/Andromeda227799/pandas-ai/src/schema"
	"github.com/spf13/afero"
)

var pathPattern = regexp.MustCompile(`^[a-z0-9\-_]+/[a-z0-9\-_]+$`)

// Save stages the frame under <project root>/<path>: schema.yaml describing
// the columns and data.parquet holding the rows. On success the frame's Path
// is set, making it pushable.
func (d *DataFrame) Save(path string) error {
	return d.SaveTo(afero.NewOsFs(), "", path)
}

// SaveTo is Save against an explicit filesystem and project root. An empty
// root triggers project-root discovery.
func (d *DataFrame) SaveTo(fsys afero.Fs, root, path string) error {
	if !pathPattern.MatchString(path) {
		return &UsageError{Msg: fmt.Sprintf("Invalid path %q: expected format 'organization/dataset'.", path)}
	}
	if root == "" {
		root = FindProjectRoot(OSEnviron{})
	}

	dir := filepath.Join(root, filepath.FromSlash(path))
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	name := d.Name
	if name == "" {
		name = path[strings.LastIndex(path, "/")+1:]
	}

	desc := &schema.Schema{
		Name:        name,
		Description: d.Description,
		Path:        path,
		Columns:     d.schemaColumns(),
	}
	schemaFile, err := fsys.Create(filepath.Join(dir, "schema.yaml"))
	if err != nil {
		return fmt.Errorf("create schema.yaml: %w", err)
	}
	if err := desc.Encode(schemaFile); err != nil {
		_ = schemaFile.Close()
		return fmt.Errorf("write schema.yaml: %w", err)
	}
	if err := schemaFile.Close(); err != nil {
		return fmt.Errorf("close schema.yaml: %w", err)
	}

	dataFile, err := fsys.Create(filepath.Join(dir, "data.parquet"))
	if err != nil {
		return fmt.Errorf("create data.parquet: %w", err)
	}
	if err := dataset.WriteParquet(dataFile, name, d.datasetColumns()); err != nil {
		_ = dataFile.Close()
		return err
	}
	if err := dataFile.Close(); err != nil {
		return fmt.Errorf("close data.parquet: %w", err)
	}

	d.Path = path
	d.Name = name
	return nil
}

// Load reads a dataset saved under <project root>/<path> back into a frame.
func Load(path string) (*DataFrame, error) {
	return LoadFrom(afero.NewOsFs(), "", path)
}

// LoadFrom is Load against an explicit filesystem and project root.
func LoadFrom(fsys afero.Fs, root, path string) (*DataFrame, error) {
	if !pathPattern.MatchString(path) {
		return nil, &UsageError{Msg: fmt.Sprintf("Invalid path %q: expected format 'organization/dataset'.", path)}
	}
	if root == "" {
		root = FindProjectRoot(OSEnviron{})
	}
	dir := filepath.Join(root, filepath.FromSlash(path))

	schemaFile, err := fsys.Open(filepath.Join(dir, "schema.yaml"))
	if err != nil {
		return nil, fmt.Errorf("open schema.yaml: %w", err)
	}
	desc, err := schema.Parse(schemaFile)
	_ = schemaFile.Close()
	if err != nil {
		return nil, err
	}

	dataFile, err := fsys.Open(filepath.Join(dir, "data.parquet"))
	if err != nil {
		return nil, fmt.Errorf("open data.parquet: %w", err)
	}
	defer dataFile.Close()

	order := make([]string, len(desc.Columns))
	for i, col := range desc.Columns {
		order[i] = col.Name
	}
	cols, err := dataset.ReadParquet(dataFile, order)
	if err != nil {
		return nil, err
	}

	series := make([]Series, len(cols))
	for i, col := range cols {
		series[i] = Series{Name: col.Name, Values: col.Values}
	}
	return NewDataFrame(series,
		WithPath(path),
		WithName(desc.Name),
		WithDescription(desc.Description),
	)
}

func (d *DataFrame) schemaColumns() []schema.Column {
	cols := make([]schema.Column, len(d.series))
	for i, s := range d.series {
		cols[i] = schema.Column{
			Name: s.Name,
			Type: schema.InferDtype(s.Values),
		}
	}
	return cols
}

func (d *DataFrame) datasetColumns() []dataset.Column {
	cols := make([]dataset.Column, len(d.series))
	for i, s := range d.series {
		cols[i] = dataset.Column{Name: s.Name, Values: s.Values}
	}
	return cols
}

package pandasai

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Andromeda227799/pandas-ai/src/schema"
	"github.com/spf13/afero"
)

func TestSaveWritesArtifactsAndSetsPath(t *testing.T) {
	df := sampleFrame(t)
	df.Path = ""
	fsys := afero.NewMemMapFs()

	if err := df.SaveTo(fsys, "/project", "acme-corp/employees"); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}
	if df.Path != "acme-corp/employees" {
		t.Fatalf("save did not set path: %q", df.Path)
	}

	dir := filepath.Join("/project", "acme-corp", "employees")
	for _, name := range []string{"schema.yaml", "data.parquet"} {
		ok, err := afero.Exists(fsys, filepath.Join(dir, name))
		if err != nil || !ok {
			t.Fatalf("missing artifact %s (err=%v)", name, err)
		}
	}

	schemaFile, err := fsys.Open(filepath.Join(dir, "schema.yaml"))
	if err != nil {
		t.Fatalf("open schema: %v", err)
	}
	defer schemaFile.Close()
	desc, err := schema.Parse(schemaFile)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if desc.Name != "employees" || desc.Path != "acme-corp/employees" {
		t.Fatalf("unexpected schema identity: %+v", desc)
	}
	if len(desc.Columns) != 4 {
		t.Fatalf("schema has %d columns, want 4", len(desc.Columns))
	}
	if desc.Columns[3].Name != "Salary" || desc.Columns[3].Type != "integer" {
		t.Fatalf("unexpected Salary column: %+v", desc.Columns[3])
	}
}

func TestSaveRejectsBadPath(t *testing.T) {
	df := sampleFrame(t)
	fsys := afero.NewMemMapFs()

	for _, path := range []string{"", "noslash", "Upper/Case", "a/b/c"} {
		var usageErr *UsageError
		err := df.SaveTo(fsys, "/project", path)
		if !errors.As(err, &usageErr) {
			t.Fatalf("SaveTo(%q) error = %v, want UsageError", path, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	df := sampleFrame(t)
	fsys := afero.NewMemMapFs()

	if err := df.SaveTo(fsys, "/project", "acme-corp/employees"); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(fsys, "/project", "acme-corp/employees")
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if loaded.Len() != df.Len() {
		t.Fatalf("loaded %d rows, want %d", loaded.Len(), df.Len())
	}
	want := df.Columns()
	got := loaded.Columns()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
	if loaded.ColumnHash() != df.ColumnHash() {
		t.Fatalf("column hash changed across save/load")
	}

	mean, err := loaded.Mean("Salary")
	if err != nil {
		t.Fatalf("Mean returned error: %v", err)
	}
	if mean != 76800 {
		t.Fatalf("Mean(Salary) = %v, want 76800", mean)
	}

	name, err := loaded.Column("Name")
	if err != nil {
		t.Fatalf("Column returned error: %v", err)
	}
	if name.Values[0] != "John" {
		t.Fatalf("Name[0] = %v, want John", name.Values[0])
	}
}

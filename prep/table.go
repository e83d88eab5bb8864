package prep

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// Column names added to preparation tables.
const (
	RawReadsColumn          = "raw_reads_r1r2"
	CenterProjectNameColumn = "center_project_name"
)

// Table is a preparation table.  Every row has len(Columns) values.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ensureColumn returns the index of the named column, appending an empty
// column if the table lacks it.
func (t *Table) ensureColumn(name string) int {
	if i := t.Column(name); i >= 0 {
		return i
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Columns) - 1
}

// Write writes t as TSV with a header row.
func (t *Table) Write(w io.Writer) error {
	tw := tsv.NewWriter(w)
	for _, c := range t.Columns {
		tw.WriteString(c)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, row := range t.Rows {
		for _, v := range row {
			tw.WriteString(v)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteFile writes t to path, replacing any existing file.
func (t *Table) WriteFile(ctx context.Context, path string) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = errors.E(cerr, "close", path)
		}
	}()
	if err = t.Write(out.Writer(ctx)); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}

package prep

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/seqprep/projectid"
	"github.com/grailbio/seqprep/samplesheet"
)

// Finalize removes the study id from every sample_project value and sets
// center_project_name, a legacy column, to the same value.
func Finalize(t *Table) error {
	p := t.Column(samplesheet.ProjectColumn)
	if p < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("table has no %s column", samplesheet.ProjectColumn))
	}
	c := t.ensureColumn(CenterProjectNameColumn)
	for _, row := range t.Rows {
		row[p] = projectid.Strip(row[p])
		row[c] = row[p]
	}
	return nil
}

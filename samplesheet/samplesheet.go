// Package samplesheet reads Illumina (v1, "IEM") sample sheets of the kind
// used to drive demultiplexing.  Only the structure needed to build
// preparation files is validated: the [Data] section must carry sample id,
// project, lane and well description columns.
package samplesheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Names of the [Data] columns the loader depends on, after lower-casing.
const (
	SampleIDColumn        = "sample_id"
	ProjectColumn         = "sample_project"
	LaneColumn            = "lane"
	WellDescriptionColumn = "well_description"
)

var requiredColumns = []string{SampleIDColumn, ProjectColumn, LaneColumn, WellDescriptionColumn}

// Sample is one [Data] row, i.e. one sample loaded on one lane.
type Sample struct {
	Run             string
	Project         string
	Lane            int
	SampleID        string
	WellDescription string
	// Fields holds the row values, aligned with Sheet.Columns.
	Fields []string
}

// Sheet is a parsed sample sheet.
type Sheet struct {
	// Header holds the key/value pairs of the [Header] section.
	Header map[string]string
	// Settings holds the key/value pairs of the [Settings] section.
	Settings map[string]string
	// Columns lists the [Data] column names, lower-cased, in file order.
	Columns []string
	// Samples lists the [Data] rows in file order.
	Samples []Sample
	// Bioinformatics holds the rows of the optional [Bioinformatics] section
	// keyed by column name.
	Bioinformatics []map[string]string
}

// Column returns the index of the named [Data] column, or -1.
func (s *Sheet) Column(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Load reads the sample sheet at path.  Every sample is stamped with runID.
func Load(ctx context.Context, path, runID string) (sheet *Sheet, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open sample sheet", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if sheet, err = Parse(in.Reader(ctx), runID); err != nil {
		return nil, errors.E(err, path)
	}
	log.Debug.Printf("%s: %d samples, %d columns", path, len(sheet.Samples), len(sheet.Columns))
	return sheet, nil
}

// Parse reads a sample sheet from r.  Every sample is stamped with runID.
func Parse(r io.Reader, runID string) (*Sheet, error) {
	sections, err := readSections(r)
	if err != nil {
		return nil, err
	}
	sheet := &Sheet{
		Header:   keyValues(sections["Header"]),
		Settings: keyValues(sections["Settings"]),
	}
	data, ok := sections["Data"]
	if !ok || len(data) == 0 {
		return nil, errors.E(errors.Invalid, "sample sheet has no [Data] section")
	}
	if err := sheet.parseData(data, runID); err != nil {
		return nil, err
	}
	if bio, ok := sections["Bioinformatics"]; ok && len(bio) > 0 {
		sheet.Bioinformatics = records(bio)
		sheet.checkProjects()
	}
	return sheet, nil
}

func (s *Sheet) parseData(data [][]string, runID string) error {
	for _, c := range trimRow(data[0]) {
		s.Columns = append(s.Columns, strings.ToLower(strings.TrimSpace(c)))
	}
	var idx [4]int
	for i, name := range requiredColumns {
		if idx[i] = s.Column(name); idx[i] < 0 {
			return errors.E(errors.Invalid, fmt.Sprintf("[Data] section is missing column %q", name))
		}
	}
	type sampleKey struct {
		project, id string
		lane        int
	}
	seen := map[sampleKey]int{}
	for i, row := range data[1:] {
		fields := make([]string, len(s.Columns))
		copy(fields, row)
		lane, err := strconv.Atoi(strings.TrimSpace(fields[idx[2]]))
		if err != nil || lane <= 0 {
			return errors.E(errors.Invalid, fmt.Sprintf("[Data] row %d: invalid lane %q", i+1, fields[idx[2]]))
		}
		sample := Sample{
			Run:             runID,
			SampleID:        fields[idx[0]],
			Project:         fields[idx[1]],
			Lane:            lane,
			WellDescription: fields[idx[3]],
			Fields:          fields,
		}
		key := sampleKey{sample.Project, sample.SampleID, sample.Lane}
		if prev, ok := seen[key]; ok {
			return errors.E(errors.Invalid, fmt.Sprintf("[Data] rows %d and %d: duplicate sample %s in project %s, lane %d",
				prev, i+1, sample.SampleID, sample.Project, sample.Lane))
		}
		seen[key] = i + 1
		s.Samples = append(s.Samples, sample)
	}
	return nil
}

// checkProjects warns about [Data] projects absent from [Bioinformatics].
func (s *Sheet) checkProjects() {
	known := map[string]bool{}
	for _, row := range s.Bioinformatics {
		known[row["Sample_Project"]] = true
	}
	warned := map[string]bool{}
	for _, sample := range s.Samples {
		if !known[sample.Project] && !warned[sample.Project] {
			log.Printf("samplesheet: project %s is not listed in [Bioinformatics]", sample.Project)
			warned[sample.Project] = true
		}
	}
}

// readSections splits the sheet into its bracketed sections.  Blank rows are
// dropped.
func readSections(r io.Reader) (map[string][][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	sections := map[string][][]string{}
	var current string
	for first := true; ; first = false {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(errors.Invalid, "malformed sample sheet", err)
		}
		if first && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
		}
		row = trimRow(row)
		if len(row) == 0 {
			continue
		}
		if head := strings.TrimSpace(row[0]); strings.HasPrefix(head, "[") && strings.HasSuffix(head, "]") {
			current = head[1 : len(head)-1]
			if _, ok := sections[current]; ok {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("duplicate section [%s]", current))
			}
			sections[current] = nil
			continue
		}
		if current == "" {
			return nil, errors.E(errors.Invalid, "sample sheet content before the first section")
		}
		sections[current] = append(sections[current], row)
	}
	return sections, nil
}

// trimRow drops trailing empty cells, which spreadsheet exports pad rows with.
func trimRow(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}

func keyValues(rows [][]string) map[string]string {
	kv := map[string]string{}
	for _, row := range rows {
		if len(row) > 1 {
			kv[row[0]] = row[1]
		} else {
			kv[row[0]] = ""
		}
	}
	return kv
}

func records(rows [][]string) []map[string]string {
	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

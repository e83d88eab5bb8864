package demuxstats

import (
	"bytes"
	"encoding/csv"
	"io"
	"io/ioutil"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

const undetermined = "Undetermined"

// demultiplexStatsRow is one row of bcl-convert's Demultiplex_Stats.csv.
type demultiplexStatsRow struct {
	Lane     int    `csv:"Lane"`
	SampleID string `csv:"SampleID"`
	Project  string `csv:"Sample_Project"`
	Index    string `csv:"Index"`
	Reads    int64  `csv:"# Reads"`
}

var demultiplexStatsColumns = []string{"Lane", "SampleID", "# Reads"}

// ParseDemultiplexStats parses a bcl-convert Demultiplex_Stats.csv report.
// Rows for undetermined reads are skipped.  Errors are as for ParseStatsJSON.
func ParseDemultiplexStats(r io.Reader) (*Table, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read Demultiplex_Stats.csv")
	}
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "Demultiplex_Stats.csv header: %v", err)
	}
	for _, want := range demultiplexStatsColumns {
		found := false
		for _, h := range header {
			found = found || h == want
		}
		if !found {
			return nil, errors.Wrapf(ErrMalformed, "Demultiplex_Stats.csv: missing column %q", want)
		}
	}
	var rows []*demultiplexStatsRow
	if err := gocsv.UnmarshalCSV(csv.NewReader(bytes.NewReader(data)), &rows); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "Demultiplex_Stats.csv: %v", err)
	}
	t := NewTable(Modern)
	for i, row := range rows {
		if row.SampleID == undetermined {
			continue
		}
		if row.Lane <= 0 || row.SampleID == "" {
			return nil, errors.Wrapf(ErrMalformed, "Demultiplex_Stats.csv row %d: invalid lane %d or sample %q", i+1, row.Lane, row.SampleID)
		}
		if err := t.Add(Record{
			Key:          Key{Lane: row.Lane, SampleID: row.SampleID},
			RawReadsR1R2: 2 * row.Reads,
		}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

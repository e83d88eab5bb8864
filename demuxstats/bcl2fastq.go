package demuxstats

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// statsJSON is the subset of bcl2fastq's Stats.json used here.  Undetermined
// reads are reported separately from DemuxResults and are ignored.
type statsJSON struct {
	ConversionResults []struct {
		LaneNumber   int
		DemuxResults []struct {
			SampleId    string
			SampleName  string
			NumberReads int64
		}
	}
}

// ParseStatsJSON parses a bcl2fastq Stats.json report.  Format errors have
// cause ErrMalformed; a sample reported twice on one lane yields the
// errors.Integrity error of Table.Add.
func ParseStatsJSON(r io.Reader) (*Table, error) {
	var stats statsJSON
	if err := json.NewDecoder(r).Decode(&stats); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "Stats.json: %v", err)
	}
	t := NewTable(Legacy)
	for _, lane := range stats.ConversionResults {
		if lane.LaneNumber <= 0 {
			return nil, errors.Wrapf(ErrMalformed, "Stats.json: invalid lane number %d", lane.LaneNumber)
		}
		for _, s := range lane.DemuxResults {
			if err := t.Add(Record{
				Key:          Key{Lane: lane.LaneNumber, SampleID: s.SampleId},
				RawReadsR1R2: 2 * s.NumberReads,
			}); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

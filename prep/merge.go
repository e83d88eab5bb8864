package prep

import (
	"fmt"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/seqprep/demuxstats"
	"github.com/grailbio/seqprep/samplesheet"
)

// JoinKey is the key preparation rows and statistics are joined on.  The
// demultiplexer reports counts by sample id, but preparation rows are
// identified by their well description, which is unique only within a lane.
type JoinKey struct {
	Lane            int
	WellDescription string
}

// ErrNonUniqueJoinKey is returned when two samples of one lane share a well
// description.
var ErrNonUniqueJoinKey = errors.E(errors.Integrity, "non-unique join key")

// Index holds read counts keyed by JoinKey.
type Index struct {
	lanes map[int]map[string]int64
	// source records the sample id owning each key in the sheet.
	source map[JoinKey]string
}

// IndexByWellDescription re-keys stats from (lane, sample id) to (lane, well
// description) using the sample sheet.  Samples without statistics are
// skipped.  Two sample ids mapping to the same well description on one lane
// yield ErrNonUniqueJoinKey, whether or not they have statistics, since
// joining on that key would attribute one sample's counts to another.
func IndexByWellDescription(stats *demuxstats.Table, samples []samplesheet.Sample) (*Index, error) {
	idx := &Index{lanes: map[int]map[string]int64{}, source: map[JoinKey]string{}}
	for _, s := range samples {
		key := JoinKey{Lane: s.Lane, WellDescription: s.WellDescription}
		if prev, ok := idx.source[key]; ok && prev != s.SampleID {
			return nil, errors.E(ErrNonUniqueJoinKey, fmt.Sprintf(
				"well description %q in lane %d belongs to samples %s and %s",
				s.WellDescription, s.Lane, prev, s.SampleID))
		}
		idx.source[key] = s.SampleID
	}
	for _, s := range samples {
		rec, ok := stats.Get(demuxstats.Key{Lane: s.Lane, SampleID: s.SampleID})
		if !ok {
			continue
		}
		lane := idx.lanes[s.Lane]
		if lane == nil {
			lane = map[string]int64{}
			idx.lanes[s.Lane] = lane
		}
		lane[s.WellDescription] = rec.RawReadsR1R2
	}
	return idx, nil
}

// Lane returns the counts of one lane keyed by well description.  The result
// must not be modified.
func (idx *Index) Lane(lane int) map[string]int64 {
	return idx.lanes[lane]
}

// Get returns the count for key.
func (idx *Index) Get(key JoinKey) (int64, bool) {
	n, ok := idx.lanes[key.Lane][key.WellDescription]
	return n, ok
}

// Merge left-joins the given lane's counts onto t by well description,
// filling column raw_reads_r1r2.  Rows without counts get an empty value.
// Every row of t is kept, exactly once.  A count is given to at most one
// row; two rows of t sharing a counted well description yield
// ErrNonUniqueJoinKey.
func Merge(t *Table, lane int, idx *Index) error {
	wd := t.Column(samplesheet.WellDescriptionColumn)
	if wd < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("table has no %s column", samplesheet.WellDescriptionColumn))
	}
	counts := idx.Lane(lane)
	col := t.ensureColumn(RawReadsColumn)
	joined := map[string]bool{}
	for _, row := range t.Rows {
		row[col] = ""
		c, ok := counts[row[wd]]
		if !ok {
			continue
		}
		if joined[row[wd]] {
			return errors.E(ErrNonUniqueJoinKey, fmt.Sprintf(
				"well description %q matches several rows in lane %d", row[wd], lane))
		}
		joined[row[wd]] = true
		row[col] = strconv.FormatInt(c, 10)
	}
	return nil
}

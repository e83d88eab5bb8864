// Package demuxstats reads the per-sample read counts reported by the two
// supported demultiplexers and exposes them as one table indexed by lane and
// sample id.
//
// Two run-directory layouts are recognized:
//
//   Legacy  (bcl2fastq):   <run>/Stats/Stats.json
//   Modern  (bcl-convert): <run>/Reports/Demultiplex_Stats.csv
//
// Both report the number of clusters (read pairs) per sample and lane.  The
// table stores RawReadsR1R2, the number of reads summed over R1 and R2.
package demuxstats

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Key identifies a statistics record.  SampleID is the demultiplexer's sample
// identifier, i.e. the sample sheet's Sample_ID column.
type Key struct {
	Lane     int
	SampleID string
}

func (k Key) String() string { return fmt.Sprintf("%s@%d", k.SampleID, k.Lane) }

// Record holds the counts reported for one sample on one lane.
type Record struct {
	Key
	RawReadsR1R2 int64
}

// Table holds statistics records indexed by Key.
type Table struct {
	Layout  Layout
	records map[Key]Record
	lanes   map[int][]Key
}

// NewTable creates an empty table for the given layout.
func NewTable(layout Layout) *Table {
	return &Table{Layout: layout, records: map[Key]Record{}, lanes: map[int][]Key{}}
}

// Add inserts r.  A second record with the same key is an integrity error.
func (t *Table) Add(r Record) error {
	if _, ok := t.records[r.Key]; ok {
		return errors.E(errors.Integrity, fmt.Sprintf("%v report lists sample %q twice in lane %d", t.Layout, r.SampleID, r.Lane))
	}
	t.records[r.Key] = r
	t.lanes[r.Lane] = append(t.lanes[r.Lane], r.Key)
	return nil
}

// Get returns the record for k.
func (t *Table) Get(k Key) (Record, bool) {
	r, ok := t.records[k]
	return r, ok
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Lanes returns the lanes present in the table, in increasing order.
func (t *Table) Lanes() []int {
	lanes := maps.Keys(t.lanes)
	slices.Sort(lanes)
	return lanes
}

// Lane returns the records of one lane in report order.
func (t *Table) Lane(lane int) []Record {
	keys := t.lanes[lane]
	out := make([]Record, len(keys))
	for i, k := range keys {
		out[i] = t.records[k]
	}
	return out
}

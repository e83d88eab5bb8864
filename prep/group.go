package prep

import (
	"context"
	"fmt"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/seqprep/samplesheet"
)

// Presence decides whether a sample produced reads in the run.
type Presence interface {
	HasReads(ctx context.Context, s samplesheet.Sample) (bool, error)
}

// PresenceFunc adapts a function to Presence.
type PresenceFunc func(ctx context.Context, s samplesheet.Sample) (bool, error)

// HasReads implements Presence.
func (f PresenceFunc) HasReads(ctx context.Context, s samplesheet.Sample) (bool, error) {
	return f(ctx, s)
}

// AllPresent treats every sample as having reads.
var AllPresent Presence = PresenceFunc(func(context.Context, samplesheet.Sample) (bool, error) {
	return true, nil
})

// GroupKey identifies a preparation table.  Project is the identifier as
// written in the sample sheet, study id included.
type GroupKey struct {
	Run     string
	Project string
	Lane    int
}

// FileName returns the base name of the group's preparation file.
func (k GroupKey) FileName() string {
	return fmt.Sprintf("%s.%s.%d.tsv", k.Run, k.Project, k.Lane)
}

func (k GroupKey) less(o GroupKey) bool {
	if k.Run != o.Run {
		return k.Run < o.Run
	}
	if k.Project != o.Project {
		return k.Project < o.Project
	}
	return k.Lane < o.Lane
}

// Group is the set of samples that make up one preparation table.
type Group struct {
	Key GroupKey
	// Samples are in sample-sheet order.
	Samples []samplesheet.Sample
}

// Table returns the group's rows as a table over the given sheet columns.
// Rows are copies; the samples are not modified.
func (g *Group) Table(columns []string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	for _, s := range g.Samples {
		row := make([]string, len(columns))
		copy(row, s.Fields)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// GroupSamples partitions samples by (run, project, lane).  Samples for which
// presence reports no reads are left out, and groups left empty are dropped.
// Groups are ordered by key; a project loaded on several lanes yields one
// group per lane.
func GroupSamples(ctx context.Context, samples []samplesheet.Sample, presence Presence) ([]*Group, error) {
	byKey := map[GroupKey]*Group{}
	var keys []GroupKey
	for _, s := range samples {
		key := GroupKey{Run: s.Run, Project: s.Project, Lane: s.Lane}
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key}
			byKey[key] = g
			keys = append(keys, key)
		}
		ok, err := presence.HasReads(ctx, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debug.Printf("prep: %s lane %d: skipping %s, no reads", s.Project, s.Lane, s.SampleID)
			continue
		}
		g.Samples = append(g.Samples, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	groups := make([]*Group, 0, len(keys))
	for _, key := range keys {
		g := byKey[key]
		if len(g.Samples) == 0 {
			log.Printf("prep: project %s and lane %d have no data, no preparation is written", key.Project, key.Lane)
			continue
		}
		groups = append(groups, g)
	}
	return groups, nil
}

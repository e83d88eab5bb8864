package prep

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/seqprep/demuxstats"
)

// Pipeline names accepted by ParsePipeline.
const (
	AtroposBowtie2 = "atropos-and-bowtie2"
	FastpMinimap2  = "fastp-and-minimap2"
)

// ErrUnsupportedPipeline is returned by Pipeline.Statistics when the
// pipeline does not support read-count statistics.  It has kind
// errors.NotSupported.
var ErrUnsupportedPipeline = errors.E(errors.NotSupported, "stats collection is not supported")

// Pipeline captures what differs between the processing pipelines that
// may have produced a run.
type Pipeline interface {
	// Name returns the pipeline's command-line name.
	Name() string
	// Statistics returns the run's per-sample read counts, or
	// ErrUnsupportedPipeline.
	Statistics(ctx context.Context, runDir string) (*demuxstats.Table, error)
	// SequenceDirs lists the project subdirectories holding the pipeline's
	// per-sample reads, most preferred first.
	SequenceDirs() []string
}

// ParsePipeline returns the Pipeline with the given name.
func ParsePipeline(name string) (Pipeline, error) {
	switch name {
	case AtroposBowtie2:
		return atroposBowtie2{}, nil
	case FastpMinimap2:
		return fastpMinimap2{}, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown pipeline %q, want %s or %s", name, AtroposBowtie2, FastpMinimap2))
}

type atroposBowtie2 struct{}

func (atroposBowtie2) Name() string { return AtroposBowtie2 }

func (atroposBowtie2) Statistics(context.Context, string) (*demuxstats.Table, error) {
	return nil, ErrUnsupportedPipeline
}

func (atroposBowtie2) SequenceDirs() []string {
	return []string{"filtered_sequences", "atropos_qc"}
}

type fastpMinimap2 struct{}

func (fastpMinimap2) Name() string { return FastpMinimap2 }

func (fastpMinimap2) Statistics(ctx context.Context, runDir string) (*demuxstats.Table, error) {
	return demuxstats.Read(ctx, runDir)
}

func (fastpMinimap2) SequenceDirs() []string {
	return []string{"filtered_sequences", "trimmed_sequences"}
}

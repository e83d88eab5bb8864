package prep

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/seqprep/projectid"
	"github.com/grailbio/seqprep/runfiles"
	"github.com/grailbio/seqprep/samplesheet"
)

// Opts configures FormatRun.
type Opts struct {
	// RunDir is the demultiplexed run directory.  Its base name is the run id.
	RunDir string
	// SampleSheet is the path of the run's sample sheet.
	SampleSheet string
	// OutputDir receives the preparation files.  It is created if needed.
	OutputDir string
	// Pipeline names the pipeline that processed the run.
	Pipeline string
	// Verbose prints "<study id>\t<absolute path>" for every file written.
	Verbose bool
	// Presence overrides how samples without reads are detected.  By
	// default the pipeline's FASTQ files in RunDir are inspected.
	Presence Presence
}

// DefaultOpts are the default options for FormatRun.
var DefaultOpts = Opts{
	Pipeline: FastpMinimap2,
}

// Output describes one preparation file written by FormatRun.
type Output struct {
	Key  GroupKey
	Path string
	Rows int
}

// FormatRun writes the preparation files of one run.  User-facing notices
// and, with opts.Verbose, the list of files written go to stdout.
func FormatRun(ctx context.Context, opts Opts, stdout io.Writer) ([]Output, error) {
	pipeline, err := ParsePipeline(opts.Pipeline)
	if err != nil {
		return nil, err
	}
	runID := filepath.Base(filepath.Clean(opts.RunDir))
	sheet, err := samplesheet.Load(ctx, opts.SampleSheet, runID)
	if err != nil {
		return nil, err
	}

	var index *Index
	stats, err := pipeline.Statistics(ctx, opts.RunDir)
	switch {
	case err == nil:
		if index, err = IndexByWellDescription(stats, sheet.Samples); err != nil {
			return nil, err
		}
	case errors.Is(errors.NotSupported, err):
		fmt.Fprintf(stdout, "Stats collection is not supported for pipeline %s\n", pipeline.Name())
	default:
		return nil, err
	}

	presence := opts.Presence
	if presence == nil {
		presence = runfiles.NewLocator(opts.RunDir, pipeline.SequenceDirs())
	}
	groups, err := GroupSamples(ctx, sheet.Samples, presence)
	if err != nil {
		return nil, err
	}
	tables := make([]*Table, len(groups))
	for i, g := range groups {
		t := g.Table(sheet.Columns)
		if index != nil {
			if err := Merge(t, g.Key.Lane, index); err != nil {
				return nil, errors.E(err, g.Key.FileName())
			}
		}
		if err := Finalize(t); err != nil {
			return nil, errors.E(err, g.Key.FileName())
		}
		tables[i] = t
	}

	if err := os.MkdirAll(opts.OutputDir, 0777); err != nil {
		return nil, errors.E(err, "create output directory", opts.OutputDir)
	}
	outputs := make([]Output, len(groups))
	for i, g := range groups {
		path := file.Join(opts.OutputDir, g.Key.FileName())
		if err := tables[i].WriteFile(ctx, path); err != nil {
			return nil, err
		}
		outputs[i] = Output{Key: g.Key, Path: path, Rows: len(tables[i].Rows)}
		log.Debug.Printf("prep: wrote %d rows to %s", len(tables[i].Rows), path)
		if opts.Verbose {
			if err := printOutput(stdout, outputs[i]); err != nil {
				return nil, err
			}
		}
	}
	return outputs, nil
}

func printOutput(w io.Writer, o Output) error {
	name, studyID, ok := projectid.Split(o.Key.Project)
	if !ok {
		log.Printf("prep: project %q has no numeric study id", name)
	}
	abs, err := filepath.Abs(o.Path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\n", studyID, abs)
	return err
}

package demuxstats

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Layout identifies which demultiplexer produced a run's statistics.
type Layout int

const (
	// Unknown is the zero Layout.
	Unknown Layout = iota
	// Legacy is the bcl2fastq layout, Stats/Stats.json.
	Legacy
	// Modern is the bcl-convert layout, Reports/Demultiplex_Stats.csv.
	Modern
)

// Report paths relative to the run directory.
const (
	LegacyReport = "Stats/Stats.json"
	ModernReport = "Reports/Demultiplex_Stats.csv"
)

// ErrAmbiguousReportLayout is returned by Resolve when a run directory holds
// the reports of both demultiplexers.
var ErrAmbiguousReportLayout = errors.E(errors.Precondition, "ambiguous report layout")

func (l Layout) String() string {
	switch l {
	case Legacy:
		return "bcl2fastq"
	case Modern:
		return "bcl-convert"
	}
	return "unknown"
}

// Resolve determines the report layout of runDir and returns the path of its
// report.  Exactly one of the two report files must exist; otherwise an error
// of kind errors.Precondition is returned.
func Resolve(ctx context.Context, runDir string) (Layout, string, error) {
	legacy := file.Join(runDir, LegacyReport)
	modern := file.Join(runDir, ModernReport)
	hasLegacy, err := exists(ctx, legacy)
	if err != nil {
		return Unknown, "", err
	}
	hasModern, err := exists(ctx, modern)
	if err != nil {
		return Unknown, "", err
	}
	switch {
	case hasLegacy && hasModern:
		return Unknown, "", errors.E(ErrAmbiguousReportLayout,
			fmt.Sprintf("both %s and %s exist", legacy, modern))
	case hasLegacy:
		return Legacy, legacy, nil
	case hasModern:
		return Modern, modern, nil
	}
	return Unknown, "", errors.E(errors.Precondition,
		fmt.Sprintf("missing report: neither %s nor %s exists", legacy, modern))
}

// Read resolves the layout of runDir and parses its report.
func Read(ctx context.Context, runDir string) (table *Table, err error) {
	layout, path, err := Resolve(ctx, runDir)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("demuxstats: reading %v report %s", layout, path)
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var parse func(io.Reader) (*Table, error)
	switch layout {
	case Legacy:
		parse = ParseStatsJSON
	case Modern:
		parse = ParseDemultiplexStats
	}
	if table, err = parse(in.Reader(ctx)); err != nil {
		if isMalformed(err) {
			return nil, errors.E(errors.Invalid, path, err)
		}
		return nil, errors.E(err, path)
	}
	log.Debug.Printf("demuxstats: %d records over lanes %v", table.Len(), table.Lanes())
	return table, nil
}

func exists(ctx context.Context, path string) (bool, error) {
	if _, err := file.Stat(ctx, path); err != nil {
		if errors.Is(errors.NotExist, err) || os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.E(err, "stat", path)
	}
	return true, nil
}

// Package runfiles locates the per-sample FASTQ files that a processing
// pipeline leaves in a sequencing run directory.
//
// Reads for a sample of project P live in <run>/<P>/<dir>, where <dir> is the
// first of the pipeline's sequence directories that holds .fastq.gz files,
// or <run>/<P> itself if none does.  File names follow the bcl2fastq
// convention <sample>_S<n>_L<lane>_R<read>_001.fastq.gz.
package runfiles

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/seqprep/encoding/fastq"
	"github.com/grailbio/seqprep/samplesheet"
	"github.com/klauspost/compress/gzip"
)

const fastqSuffix = ".fastq.gz"

// Pair is the forward and reverse read files of one sample on one lane.
type Pair struct {
	R1, R2 string
	// Prefix is the common prefix of the two file names, without the
	// trailing "_R".
	Prefix string
}

// Locator finds read files under RunDir.  A Locator caches directory
// listings and is not safe for concurrent use.
type Locator struct {
	RunDir string
	// Dirs lists the project subdirectories to search, most preferred first.
	Dirs []string

	listings map[string][]string
}

// NewLocator creates a Locator for the given run directory.
func NewLocator(runDir string, dirs []string) *Locator {
	return &Locator{RunDir: runDir, Dirs: dirs, listings: map[string][]string{}}
}

// HasReads reports whether the sample has a non-empty read pair in the run.
func (l *Locator) HasReads(ctx context.Context, s samplesheet.Sample) (bool, error) {
	pair, ok, err := l.Find(ctx, s.Project, s.SampleID, s.Lane)
	if err != nil || !ok {
		return false, err
	}
	for _, p := range []string{pair.R1, pair.R2} {
		nonEmpty, err := hasRecord(ctx, p)
		if err != nil {
			return false, errors.E(err, p)
		}
		if !nonEmpty {
			log.Debug.Printf("runfiles: %s has no reads", p)
			return false, nil
		}
	}
	log.Debug.Printf("runfiles: %s/%s lane %d: %s", s.Project, s.SampleID, s.Lane, pair.Prefix)
	return true, nil
}

// Find returns the read pair of the sample on the given lane.  ok is false
// unless exactly two files match.
func (l *Locator) Find(ctx context.Context, project, sampleID string, lane int) (pair Pair, ok bool, err error) {
	dir, names, err := l.sequenceDir(ctx, project)
	if err != nil {
		return Pair{}, false, err
	}
	re := regexp.MustCompile(fmt.Sprintf(`^%s_S[^/]*_L0*%d_R[^/]*%s$`,
		regexp.QuoteMeta(sampleID), lane, regexp.QuoteMeta(fastqSuffix)))
	var matches []string
	for _, name := range names {
		if re.MatchString(name) {
			matches = append(matches, name)
		}
	}
	switch {
	case len(matches) == 2:
	case len(matches) > 2:
		log.Printf("runfiles: %d matches for sample %q in lane %d, only forward and reverse are allowed: %s",
			len(matches), sampleID, lane, strings.Join(matches, ", "))
		return Pair{}, false, nil
	default:
		return Pair{}, false, nil
	}
	sort.Strings(matches)
	f, r := matches[0], matches[1]
	if len(f) != len(r) {
		return Pair{}, false, errors.E(errors.Invalid,
			fmt.Sprintf("forward and reverse file names differ in length: %s, %s", f, r))
	}
	return Pair{
		R1:     file.Join(dir, f),
		R2:     file.Join(dir, r),
		Prefix: strings.TrimSuffix(commonPrefix(f, r), "_R"),
	}, true, nil
}

// sequenceDir picks the directory holding the project's reads and returns
// it along with the FASTQ file names in it.
func (l *Locator) sequenceDir(ctx context.Context, project string) (string, []string, error) {
	base := file.Join(l.RunDir, project)
	for _, d := range l.Dirs {
		dir := file.Join(base, d)
		names, err := l.list(ctx, dir)
		if err != nil {
			return "", nil, err
		}
		if len(names) > 0 {
			return dir, names, nil
		}
	}
	names, err := l.list(ctx, base)
	return base, names, err
}

// list returns the sorted .fastq.gz file names directly inside dir.  A
// missing directory yields no names.
func (l *Locator) list(ctx context.Context, dir string) ([]string, error) {
	if names, ok := l.listings[dir]; ok {
		return names, nil
	}
	var names []string
	lister := file.List(ctx, dir, false)
	for lister.Scan() {
		if lister.IsDir() {
			continue
		}
		if name := path.Base(lister.Path()); strings.HasSuffix(name, fastqSuffix) {
			names = append(names, name)
		}
	}
	if err := lister.Err(); err != nil && !notExist(err) {
		return nil, errors.E(err, "list", dir)
	}
	sort.Strings(names)
	l.listings[dir] = names
	return names, nil
}

func hasRecord(ctx context.Context, p string) (ok bool, err error) {
	in, err := file.Open(ctx, p)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(p) == fileio.Gzip {
		gz, err := gzip.NewReader(r)
		if err == io.EOF {
			// Zero-byte file.
			return false, nil
		}
		if err != nil {
			return false, err
		}
		defer gz.Close()
		r = gz
	}
	return fastq.HasRecord(r)
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}

func notExist(err error) bool {
	return errors.Is(errors.NotExist, err) || os.IsNotExist(err)
}

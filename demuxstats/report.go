package demuxstats

import "github.com/pkg/errors"

// ErrMalformed is the cause of errors returned by the report parsers for
// input that does not follow the report's format.
var ErrMalformed = errors.New("malformed demultiplexing report")

func isMalformed(err error) bool {
	return errors.Cause(err) == ErrMalformed
}

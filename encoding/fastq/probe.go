// Package fastq inspects FASTQ read files.
package fastq

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const linesPerRead = 4

var (
	// ErrTruncated is returned when the input ends inside a FASTQ record.
	ErrTruncated = errors.New("truncated FASTQ record")
	// ErrMalformed is returned when a record does not follow the four-line
	// FASTQ layout.
	ErrMalformed = errors.New("malformed FASTQ record")
)

// HasRecord reports whether r starts with at least one complete FASTQ
// record.  Empty input (including input holding only blank lines) has no
// records.  Only the first record is read.
//
// The ID line must begin with "@" and line 3 with "+"; sequence and quality
// contents are not checked.
func HasRecord(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	var line []byte
	var err error
	for len(line) == 0 {
		if line, err = readLine(br); err == io.EOF {
			return false, nil
		} else if err != nil {
			return false, errors.Wrap(err, "read FASTQ")
		}
	}
	if line[0] != '@' {
		return false, ErrMalformed
	}
	for i := 1; i < linesPerRead; i++ {
		if line, err = readLine(br); err == io.EOF {
			return false, errors.Wrapf(ErrTruncated, "want %d lines, got %d", linesPerRead, i)
		} else if err != nil {
			return false, errors.Wrap(err, "read FASTQ")
		}
		if i == 2 && (len(line) == 0 || line[0] != '+') {
			return false, ErrMalformed
		}
	}
	return true, nil
}

// readLine returns the next line without its terminator.  A final line
// lacking a newline is returned with a nil error.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	n := len(line)
	for n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		n--
	}
	return line[:n], nil
}

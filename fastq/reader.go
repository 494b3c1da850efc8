// Package fastq reads and writes 4-line FASTQ records.
package fastq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrTruncated is returned when a stream ends inside a record.
	ErrTruncated = errors.New("truncated fastq record")
	// ErrMalformed is returned for a record whose header does not start
	// with '@' or whose separator does not start with '+'.
	ErrMalformed = errors.New("malformed fastq record")
)

type Record struct {
	Header string
	Seq    string
	Plus   string
	Qual   string
}

// Reader yields whole records from a line stream.
type Reader struct {
	r    *bufio.Reader
	line int
	n    int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1<<16)}
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int { return r.line }

// Records returns the number of complete records read so far.
func (r *Reader) Records() int64 { return r.n }

// Read fills rec with the next record. It returns io.EOF only when the
// stream ends exactly on a record boundary.
func (r *Reader) Read(rec *Record) error {
	var lines [4]string
	for i := range lines {
		line, err := r.readLine()
		if err == io.EOF {
			if i == 0 {
				return io.EOF
			}
			return fmt.Errorf("%w: record %d ends after %d lines", ErrTruncated, r.n+1, i)
		}
		if err != nil {
			return err
		}
		lines[i] = line
	}
	if !strings.HasPrefix(lines[0], "@") {
		return fmt.Errorf("%w: line %d: header %q", ErrMalformed, r.line-3, lines[0])
	}
	if !strings.HasPrefix(lines[2], "+") {
		return fmt.Errorf("%w: line %d: separator %q", ErrMalformed, r.line-1, lines[2])
	}
	rec.Header, rec.Seq, rec.Plus, rec.Qual = lines[0], lines[1], lines[2], lines[3]
	r.n++
	return nil
}

func (r *Reader) readLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	r.line++
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

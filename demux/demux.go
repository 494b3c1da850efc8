// Package demux tags paired reads with the A/C barcodes of their index read.
package demux

import (
	"errors"
	"fmt"
	"io"

	"github.com/liserjrqlxue/demultBCAC/barcode"
	"github.com/liserjrqlxue/demultBCAC/fastq"
	"github.com/liserjrqlxue/demultBCAC/stats"
)

const (
	Primary = "R1"
	Mate    = "R2"
	Index   = "I1"
)

// ErrDesync is matched by every DesyncError.
var ErrDesync = errors.New("fastq streams out of sync")

// DesyncError reports that one input stream does not line up with the
// primary stream at the given 1-based record.
type DesyncError struct {
	Stream string
	Record int64
	Err    error
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("%v: %s record %d: %v", ErrDesync, e.Stream, e.Record, e.Err)
}

func (e *DesyncError) Unwrap() error { return e.Err }

func (e *DesyncError) Is(target error) bool { return target == ErrDesync }

var (
	errEarlyEnd    = errors.New("stream ended before " + Primary)
	errExtraRecord = errors.New("stream has records after " + Primary + " ended")
)

type RecordReader interface {
	Read(rec *fastq.Record) error
}

type RecordWriter interface {
	Write(rec *fastq.Record) error
}

// Demultiplexer drives one primary, one mate and one index stream in
// lockstep.
type Demultiplexer struct {
	ex    *barcode.Extractor
	table *stats.Table
}

func New(ex *barcode.Extractor, table *stats.Table) *Demultiplexer {
	return &Demultiplexer{ex: ex, table: table}
}

func (d *Demultiplexer) Table() *stats.Table { return d.table }

// Run processes records until the primary stream is exhausted and returns
// the number of read pairs written. The mate and index streams must end at
// the same record.
func (d *Demultiplexer) Run(primary, mate, index RecordReader, outPrimary, outMate RecordWriter) (int64, error) {
	var (
		p, m, i fastq.Record
		n       int64
	)
	for {
		err := primary.Read(&p)
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, streamError(Primary, n+1, err)
		}
		if err := mate.Read(&m); err != nil {
			return n, streamError(Mate, n+1, err)
		}
		if err := index.Read(&i); err != nil {
			return n, streamError(Index, n+1, err)
		}

		pair := d.ex.Extract(i.Seq)
		header := Annotate(p.Header, pair, i.Seq, i.Qual).String()
		p.Header = header
		m.Header = header

		if err := outPrimary.Write(&p); err != nil {
			return n, fmt.Errorf("write %s: %w", Primary, err)
		}
		if err := outMate.Write(&m); err != nil {
			return n, fmt.Errorf("write %s: %w", Mate, err)
		}
		d.table.Add(pair.Code(), pair.Status)
		n++
	}

	if err := expectEnd(Mate, mate, n); err != nil {
		return n, err
	}
	if err := expectEnd(Index, index, n); err != nil {
		return n, err
	}
	return n, nil
}

func streamError(stream string, record int64, err error) error {
	switch {
	case err == io.EOF:
		return &DesyncError{Stream: stream, Record: record, Err: errEarlyEnd}
	case errors.Is(err, fastq.ErrTruncated):
		return &DesyncError{Stream: stream, Record: record, Err: err}
	}
	return fmt.Errorf("read %s record %d: %w", stream, record, err)
}

func expectEnd(stream string, r RecordReader, n int64) error {
	var rec fastq.Record
	err := r.Read(&rec)
	if err == io.EOF {
		return nil
	}
	if err == nil {
		return &DesyncError{Stream: stream, Record: n + 1, Err: errExtraRecord}
	}
	return streamError(stream, n+1, err)
}

package fastq

import (
	"bufio"
	"io"
)

type Writer struct {
	w *bufio.Writer
	n int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 1<<16)}
}

func (w *Writer) Write(rec *Record) error {
	for _, line := range [4]string{rec.Header, rec.Seq, rec.Plus, rec.Qual} {
		if _, err := w.w.WriteString(line); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	w.n++
	return nil
}

// Records returns the number of records written.
func (w *Writer) Records() int64 { return w.n }

func (w *Writer) Flush() error { return w.w.Flush() }

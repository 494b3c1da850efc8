package fastq

import (
	"io"
	"os"

	gzip "github.com/klauspost/pgzip"
)

// InFile is a gzip-compressed FASTQ file opened for reading.
type InFile struct {
	*Reader
	Path string
	Size int64

	file   *os.File
	gr     *gzip.Reader
	closed bool
}

// Open opens a .fastq.gz file. If wrap is not nil it is applied to the
// compressed byte stream, e.g. to count progress.
func Open(path string, wrap func(r io.Reader, size int64) io.Reader) (*InFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	var src io.Reader = file
	if wrap != nil {
		src = wrap(file, info.Size())
	}
	gr, err := gzip.NewReader(src)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &InFile{
		Reader: NewReader(gr),
		Path:   path,
		Size:   info.Size(),
		file:   file,
		gr:     gr,
	}, nil
}

func (f *InFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.gr.Close()
	if e := f.file.Close(); err == nil {
		err = e
	}
	return err
}

// OutFile is a gzip-compressed FASTQ file opened for writing.
type OutFile struct {
	*Writer
	Path string

	file   *os.File
	gw     *gzip.Writer
	closed bool
}

func Create(path string) (*OutFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	gw := gzip.NewWriter(file)
	return &OutFile{
		Writer: NewWriter(gw),
		Path:   path,
		file:   file,
		gw:     gw,
	}, nil
}

// Close flushes buffered records, finishes the gzip stream and closes the
// file, returning the first error. Later calls do nothing.
func (f *OutFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.Flush()
	if e := f.gw.Close(); err == nil {
		err = e
	}
	if e := f.file.Close(); err == nil {
		err = e
	}
	return err
}

// Package barcode resolves observed index substrings against barcode tables.
package barcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	codeWidth = 4
	// code + separator + at least one base
	minLineWidth = codeWidth + 2
)

var (
	ErrShortLine = errors.New("barcode line too short")
	ErrBadBase   = errors.New("barcode sequence has invalid base")
	ErrDuplicate = errors.New("duplicate barcode sequence")
	ErrEmpty     = errors.New("no barcodes loaded")
)

// LineError reports a malformed line of a barcode table.
type LineError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Dictionary maps barcode sequences to their code labels. It is never
// modified after Load returns.
type Dictionary struct {
	name  string
	codes map[string]string
	seqs  []string
}

// Load reads a barcode table. Each line holds a 4-character code, one
// separator character and the barcode sequence, e.g. "A001\tAACCACA".
func Load(r io.Reader, name string) (*Dictionary, error) {
	var (
		d = &Dictionary{
			name:  name,
			codes: make(map[string]string),
		}
		firstSeen = make(map[string]int)
		scanner   = bufio.NewScanner(r)
		n         = 0
	)
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		if len(line) < minLineWidth {
			return nil, &LineError{File: name, Line: n, Text: line, Err: ErrShortLine}
		}
		code, seq := line[:codeWidth], line[codeWidth+1:]
		if !validSequence(seq) {
			return nil, &LineError{File: name, Line: n, Text: line, Err: ErrBadBase}
		}
		if first, ok := firstSeen[seq]; ok {
			return nil, &LineError{
				File: name,
				Line: n,
				Text: line,
				Err:  fmt.Errorf("%w (first seen on line %d)", ErrDuplicate, first),
			}
		}
		firstSeen[seq] = n
		d.codes[seq] = code
		d.seqs = append(d.seqs, seq)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(d.codes) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	sort.Strings(d.seqs)
	return d, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, path)
}

func validSequence(seq string) bool {
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return false
		}
	}
	return true
}

func (d *Dictionary) Name() string { return d.name }

func (d *Dictionary) Len() int { return len(d.seqs) }

func (d *Dictionary) Lookup(seq string) (code string, ok bool) {
	code, ok = d.codes[seq]
	return
}

// Each calls fn for every entry in lexicographic sequence order.
func (d *Dictionary) Each(fn func(seq, code string)) {
	for _, seq := range d.seqs {
		fn(seq, d.codes[seq])
	}
}

package barcode

import (
	"errors"
	"fmt"
)

// Status is the combined classification of the two barcodes of one read.
type Status int

const (
	StatusCorrect Status = iota
	StatusCorrected
	StatusUnclear
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusCorrected:
		return "corrected"
	case StatusUnclear:
		return "unclear"
	}
	return "unknown"
}

// Layout places barcodes C and A inside the index sequence. An End below
// zero runs to the end of the sequence. Index sequences shorter than
// MinLength are not resolved.
type Layout struct {
	CStart, CEnd int
	AStart, AEnd int
	MinLength    int
}

// DefaultLayout reads C from the first 7 bases and A from base 10 onwards.
var DefaultLayout = Layout{
	CStart:    0,
	CEnd:      7,
	AStart:    10,
	AEnd:      -1,
	MinLength: 17,
}

var ErrLayout = errors.New("invalid barcode layout")

func (l Layout) Validate() error {
	check := func(name string, start, end int) error {
		switch {
		case start < 0:
			return fmt.Errorf("%w: %s start %d is negative", ErrLayout, name, start)
		case start >= l.MinLength:
			return fmt.Errorf("%w: %s start %d is beyond min length %d", ErrLayout, name, start, l.MinLength)
		case end >= 0 && end <= start:
			return fmt.Errorf("%w: %s range [%d:%d] is empty", ErrLayout, name, start, end)
		case end > l.MinLength:
			return fmt.Errorf("%w: %s end %d is beyond min length %d", ErrLayout, name, end, l.MinLength)
		}
		return nil
	}
	if err := check("C", l.CStart, l.CEnd); err != nil {
		return err
	}
	if err := check("A", l.AStart, l.AEnd); err != nil {
		return err
	}
	if overlaps(l.CStart, l.CEnd, l.AStart, l.AEnd) {
		return fmt.Errorf("%w: A and C ranges overlap", ErrLayout)
	}
	return nil
}

func overlaps(s1, e1, s2, e2 int) bool {
	if e1 < 0 {
		e1 = int(^uint(0) >> 1)
	}
	if e2 < 0 {
		e2 = int(^uint(0) >> 1)
	}
	return s1 < e2 && s2 < e1
}

func (l Layout) slice(seq string, start, end int) string {
	if end < 0 {
		return seq[start:]
	}
	return seq[start:end]
}

// Pair holds both resolved barcodes of one index read.
type Pair struct {
	A, C   Resolution
	Status Status
}

// Code is the statistics key: code A followed by code C.
func (p Pair) Code() string { return p.A.Code + p.C.Code }

// Extractor resolves barcodes A and C from index sequences.
type Extractor struct {
	layout Layout
	a, c   *Resolver
}

func NewExtractor(layout Layout, a, c *Resolver) (*Extractor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{layout: layout, a: a, c: c}, nil
}

func (e *Extractor) Layout() Layout { return e.layout }

func (e *Extractor) Computations() int64 {
	return e.a.Computations() + e.c.Computations()
}

func (e *Extractor) Extract(indexSeq string) Pair {
	if len(indexSeq) < e.layout.MinLength {
		return Pair{
			A:      e.a.Unresolved(),
			C:      e.c.Unresolved(),
			Status: StatusUnclear,
		}
	}

	p := Pair{
		A: e.a.Resolve(e.layout.slice(indexSeq, e.layout.AStart, e.layout.AEnd)),
		C: e.c.Resolve(e.layout.slice(indexSeq, e.layout.CStart, e.layout.CEnd)),
	}
	switch {
	case p.A.Class == Ambiguous || p.C.Class == Ambiguous:
		p.Status = StatusUnclear
	case p.A.Class == Corrected || p.C.Class == Corrected:
		p.Status = StatusCorrected
	default:
		p.Status = StatusCorrect
	}
	return p
}

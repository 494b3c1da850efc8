package barcode

import (
	"errors"
	"fmt"
)

// ErrReservedCode is returned when a table assigns the sentinel code to a
// barcode.
var ErrReservedCode = errors.New("barcode code is reserved")

// Class says how an observed barcode was resolved.
type Class int

const (
	Exact Class = iota
	Corrected
	Ambiguous
)

func (c Class) String() string {
	switch c {
	case Exact:
		return "exact"
	case Corrected:
		return "corrected"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Resolution is the code assigned to one observed barcode. Distance is the
// edit distance to the chosen entry, or -1 when nothing was compared.
type Resolution struct {
	Code     string
	Class    Class
	Distance int
}

// Resolver assigns codes from one dictionary. Unresolvable barcodes get the
// sentinel code prefix+"000". A Resolver is not safe for concurrent use.
type Resolver struct {
	dict     *Dictionary
	sentinel string

	computations int64
}

// NewResolver fails if any entry of dict uses the sentinel code.
func NewResolver(dict *Dictionary, prefix string) (*Resolver, error) {
	r := &Resolver{
		dict:     dict,
		sentinel: prefix + "000",
	}
	var err error
	dict.Each(func(seq, code string) {
		if err == nil && code == r.sentinel {
			err = fmt.Errorf("%s: %w: %s %s", dict.Name(), ErrReservedCode, code, seq)
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) Sentinel() string { return r.sentinel }

func (r *Resolver) Dictionary() *Dictionary { return r.dict }

// Computations returns how many edit distances this resolver has computed.
func (r *Resolver) Computations() int64 { return r.computations }

// Unresolved returns the sentinel resolution used when no comparison is made.
func (r *Resolver) Unresolved() Resolution {
	return Resolution{Code: r.sentinel, Class: Ambiguous, Distance: -1}
}

// Resolve looks observed up in the dictionary. On a miss it picks the entry
// at minimum edit distance; a tie between two or more entries is Ambiguous.
func (r *Resolver) Resolve(observed string) Resolution {
	if code, ok := r.dict.Lookup(observed); ok {
		return Resolution{Code: code, Class: Exact, Distance: 0}
	}

	var (
		best     = -1
		bestCode string
		ties     int
	)
	r.dict.Each(func(seq, code string) {
		r.computations++
		d := Distance(observed, seq)
		switch {
		case best < 0 || d < best:
			best = d
			bestCode = code
			ties = 1
		case d == best:
			ties++
		}
	})

	if best < 0 {
		return r.Unresolved()
	}
	if ties > 1 {
		return Resolution{Code: r.sentinel, Class: Ambiguous, Distance: best}
	}
	return Resolution{Code: bestCode, Class: Corrected, Distance: best}
}

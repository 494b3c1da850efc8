// Package stats counts reads per resolved barcode pair.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/liserjrqlxue/demultBCAC/barcode"
)

const (
	clearHeader   = "Barcode \t Correct reads \t Corrected reads"
	unclearHeader = "Barcode \t Unclear reads"
)

type Counts struct {
	Exact     int64
	Corrected int64
}

type ClearRow struct {
	Code string
	Counts
}

type UnclearRow struct {
	Code  string
	Count int64
}

// Table holds the clear and unclear tables of one run. Entries are created
// on first use and never removed.
type Table struct {
	clear   map[string]*Counts
	unclear map[string]int64
}

func New() *Table {
	return &Table{
		clear:   make(map[string]*Counts),
		unclear: make(map[string]int64),
	}
}

func (t *Table) Add(code string, status barcode.Status) {
	if status == barcode.StatusUnclear {
		t.unclear[code]++
		return
	}

	c, ok := t.clear[code]
	if !ok {
		c = &Counts{}
		t.clear[code] = c
	}
	if status == barcode.StatusCorrected {
		c.Corrected++
	} else {
		c.Exact++
	}
}

// Clear returns the clear table sorted by pair code.
func (t *Table) Clear() []ClearRow {
	rows := make([]ClearRow, 0, len(t.clear))
	for code, c := range t.clear {
		rows = append(rows, ClearRow{Code: code, Counts: *c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// Unclear returns the unclear table sorted by pair code.
func (t *Table) Unclear() []UnclearRow {
	rows := make([]UnclearRow, 0, len(t.unclear))
	for code, n := range t.unclear {
		rows = append(rows, UnclearRow{Code: code, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// Summary returns the read totals per status.
func (t *Table) Summary() (exact, corrected, unclear int64) {
	for _, c := range t.clear {
		exact += c.Exact
		corrected += c.Corrected
	}
	for _, n := range t.unclear {
		unclear += n
	}
	return
}

// Total is the number of reads counted; it equals the number of Add calls.
func (t *Table) Total() int64 {
	exact, corrected, unclear := t.Summary()
	return exact + corrected + unclear
}

func (t *Table) WriteClear(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, clearHeader)
	for _, row := range t.Clear() {
		fmt.Fprintf(bw, "%s\t%d\t%d\n", row.Code, row.Exact, row.Corrected)
	}
	return bw.Flush()
}

func (t *Table) WriteUnclear(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, unclearHeader)
	for _, row := range t.Unclear() {
		fmt.Fprintf(bw, "%s\t%d\n", row.Code, row.Count)
	}
	return bw.Flush()
}

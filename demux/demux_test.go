package demux

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/liserjrqlxue/demultBCAC/barcode"
	"github.com/liserjrqlxue/demultBCAC/fastq"
	"github.com/liserjrqlxue/demultBCAC/stats"
)

const (
	tableA = "A001\tAAAAAAA\nA002\tCCCCCCC\n"
	tableC = "C001\tGGGGGGG\nC002\tTTTTTTT\n"
)

func newExtractor(t testing.TB) *barcode.Extractor {
	t.Helper()
	a, err := barcode.Load(strings.NewReader(tableA), "BC_A.txt")
	if err != nil {
		t.Fatal(err)
	}
	c, err := barcode.Load(strings.NewReader(tableC), "BC_C.txt")
	if err != nil {
		t.Fatal(err)
	}
	resA, err := barcode.NewResolver(a, "A")
	if err != nil {
		t.Fatal(err)
	}
	resC, err := barcode.NewResolver(c, "C")
	if err != nil {
		t.Fatal(err)
	}
	ex, err := barcode.NewExtractor(barcode.DefaultLayout, resA, resC)
	if err != nil {
		t.Fatal(err)
	}
	return ex
}

func fq(recs ...fastq.Record) string {
	var sb strings.Builder
	for _, r := range recs {
		sb.WriteString(r.Header + "\n" + r.Seq + "\n" + r.Plus + "\n" + r.Qual + "\n")
	}
	return sb.String()
}

func read(name, seq string) fastq.Record {
	return fastq.Record{Header: name, Seq: seq, Plus: "+", Qual: strings.Repeat("I", len(seq))}
}

func index(seq string) fastq.Record {
	return fastq.Record{Header: "@i", Seq: seq, Plus: "+", Qual: strings.Repeat("F", len(seq))}
}

type lane struct {
	r1, r2, i1 []fastq.Record
}

func testLane() lane {
	return lane{
		r1: []fastq.Record{
			read("@read1 1:N:0:1", "ACGT"),
			read("@read2", "CCGG"),
			read("@read3\t1:N:0:1", "TTAA"),
		},
		r2: []fastq.Record{
			read("@read1 2:N:0:1", "GGTT"),
			read("@read2", "AACC"),
			read("@read3\t2:N:0:1", "GATC"),
		},
		i1: []fastq.Record{
			index("GGGGGGGNNNAAAAAAA"),
			index("GGGG"),
			index("TTTTTTTNNNAAAAAAT"),
		},
	}
}

func run(t *testing.T, l lane) (out1, out2 string, table *stats.Table, n int64, err error) {
	t.Helper()
	var b1, b2 bytes.Buffer
	w1, w2 := fastq.NewWriter(&b1), fastq.NewWriter(&b2)
	d := New(newExtractor(t), stats.New())
	n, err = d.Run(
		fastq.NewReader(strings.NewReader(fq(l.r1...))),
		fastq.NewReader(strings.NewReader(fq(l.r2...))),
		fastq.NewReader(strings.NewReader(fq(l.i1...))),
		w1, w2,
	)
	if e := w1.Flush(); e != nil {
		t.Fatal(e)
	}
	if e := w2.Flush(); e != nil {
		t.Fatal(e)
	}
	return b1.String(), b2.String(), d.Table(), n, err
}

func TestRun(t *testing.T) {
	out1, out2, table, n, err := run(t, testLane())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}

	h1 := "@read1 BX:Z:A001C001\tRX:Z:GGGGGGGNNNAAAAAAA+\tQX:Z:FFFFFFFFFFFFFFFFF+"
	h2 := "@read2 BX:Z:A000C000\tRX:Z:GGGG+\tQX:Z:FFFF+"
	h3 := "@read3\tBX:Z:A001C002\tRX:Z:TTTTTTTNNNAAAAAAT+\tQX:Z:FFFFFFFFFFFFFFFFF+"

	want1 := h1 + "\nACGT\n+\nIIII\n" + h2 + "\nCCGG\n+\nIIII\n" + h3 + "\nTTAA\n+\nIIII\n"
	want2 := h1 + "\nGGTT\n+\nIIII\n" + h2 + "\nAACC\n+\nIIII\n" + h3 + "\nGATC\n+\nIIII\n"
	if out1 != want1 {
		t.Errorf("R1 output:\n%s\nwant:\n%s", out1, want1)
	}
	if out2 != want2 {
		t.Errorf("R2 output:\n%s\nwant:\n%s", out2, want2)
	}

	exact, corrected, unclear := table.Summary()
	if exact != 1 || corrected != 1 || unclear != 1 {
		t.Errorf("Summary = %d %d %d, want 1 1 1", exact, corrected, unclear)
	}
	if table.Total() != n {
		t.Errorf("Total = %d, records = %d", table.Total(), n)
	}
}

func TestRunEmpty(t *testing.T) {
	out1, out2, table, n, err := run(t, lane{})
	if err != nil || n != 0 || out1 != "" || out2 != "" || table.Total() != 0 {
		t.Errorf("empty lane: n=%d err=%v out=%q/%q", n, err, out1, out2)
	}
}

func TestRunDesync(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(l *lane)
		stream string
		record int64
	}{
		{"mate short", func(l *lane) { l.r2 = l.r2[:2] }, Mate, 3},
		{"index short", func(l *lane) { l.i1 = l.i1[:1] }, Index, 2},
		{"mate extra", func(l *lane) { l.r2 = append(l.r2, read("@read4", "A")) }, Mate, 4},
		{"index extra", func(l *lane) { l.i1 = append(l.i1, index("GGGG")) }, Index, 4},
		{"primary short", func(l *lane) { l.r1 = l.r1[:2] }, Mate, 3},
	}
	for _, test := range tests {
		l := testLane()
		test.edit(&l)
		_, _, _, _, err := run(t, l)
		if !errors.Is(err, ErrDesync) {
			t.Errorf("%s: err = %v, want ErrDesync", test.name, err)
			continue
		}
		var de *DesyncError
		if !errors.As(err, &de) || de.Stream != test.stream || de.Record != test.record {
			t.Errorf("%s: err = %v, want %s record %d", test.name, err, test.stream, test.record)
		}
	}
}

func TestRunTruncated(t *testing.T) {
	l := testLane()
	var b1, b2 bytes.Buffer
	d := New(newExtractor(t), stats.New())
	truncated := strings.TrimSuffix(fq(l.i1...), "+\nFFFFFFFFFFFFFFFFF\n")
	n, err := d.Run(
		fastq.NewReader(strings.NewReader(fq(l.r1...))),
		fastq.NewReader(strings.NewReader(fq(l.r2...))),
		fastq.NewReader(strings.NewReader(truncated)),
		fastq.NewWriter(&b1), fastq.NewWriter(&b2),
	)
	if !errors.Is(err, ErrDesync) || !errors.Is(err, fastq.ErrTruncated) {
		t.Fatalf("err = %v, want ErrDesync wrapping ErrTruncated", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestRunMalformed(t *testing.T) {
	l := testLane()
	l.i1[0].Header = "i"
	_, _, _, _, err := run(t, l)
	if !errors.Is(err, fastq.ErrMalformed) || errors.Is(err, ErrDesync) {
		t.Errorf("err = %v, want ErrMalformed only", err)
	}
}

func TestAnnotate(t *testing.T) {
	pair := barcode.Pair{
		A: barcode.Resolution{Code: "A151"},
		C: barcode.Resolution{Code: "C007"},
	}
	tests := []struct {
		header string
		want   string
	}{
		{"@M0:1:FC:1:1:1:1 1:N:0:0", "@M0:1:FC:1:1:1:1 BX:Z:A151C007\tRX:Z:ACGT+\tQX:Z:IIII+"},
		{"@name", "@name BX:Z:A151C007\tRX:Z:ACGT+\tQX:Z:IIII+"},
		{"@name  two spaces", "@name BX:Z:A151C007\tRX:Z:ACGT+\tQX:Z:IIII+"},
	}
	for _, test := range tests {
		a := Annotate(test.header, pair, "ACGT", "IIII")
		if got := a.String(); got != test.want {
			t.Errorf("Annotate(%q) = %q, want %q", test.header, got, test.want)
		}
		if a.MateSeq != "" || a.MateQual != "" {
			t.Errorf("mate fields filled: %+v", a)
		}
	}
}

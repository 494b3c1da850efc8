package demux

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/liserjrqlxue/demultBCAC/barcode"
	"github.com/liserjrqlxue/demultBCAC/fastq"
	"github.com/liserjrqlxue/demultBCAC/stats"
)

// Paths lists every file of one lane.
type Paths struct {
	R1, R2, I1   string
	OutR1, OutR2 string
	ClearLog     string
	UnclearLog   string
	XLSX         string
}

// LanePaths derives the lane files. The input prefix is used as is, so
// "run/S1_L001_" reads run/S1_L001_R1_001.fastq.gz; outputs add "_".
func LanePaths(inPrefix, outPrefix string) Paths {
	return Paths{
		R1:         inPrefix + "R1_001.fastq.gz",
		R2:         inPrefix + "R2_001.fastq.gz",
		I1:         inPrefix + "I1_001.fastq.gz",
		OutR1:      outPrefix + "_R1_001.fastq.gz",
		OutR2:      outPrefix + "_R2_001.fastq.gz",
		ClearLog:   outPrefix + "_clearBC.log",
		UnclearLog: outPrefix + "_unclearBC.log",
		XLSX:       outPrefix + "_BC.xlsx",
	}
}

func (p Paths) Inputs() []string { return []string{p.R1, p.R2, p.I1} }

type Options struct {
	XLSX     bool
	Progress bool
}

// RunLane demultiplexes one lane and writes its reads, logs and, when asked,
// the workbook. Logs are written only after all reads were processed.
func RunLane(p Paths, ex *barcode.Extractor, opt Options) (*stats.Table, error) {
	var wrap func(io.Reader, int64) io.Reader
	if opt.Progress {
		var bar *pb.ProgressBar
		wrap = func(r io.Reader, size int64) io.Reader {
			bar = pb.Full.Start64(size)
			bar.Set(pb.Bytes, true)
			return bar.NewProxyReader(r)
		}
		defer func() {
			if bar != nil {
				bar.Finish()
			}
		}()
	}

	r1, err := fastq.Open(p.R1, wrap)
	if err != nil {
		return nil, err
	}
	defer r1.Close()
	r2, err := fastq.Open(p.R2, nil)
	if err != nil {
		return nil, err
	}
	defer r2.Close()
	i1, err := fastq.Open(p.I1, nil)
	if err != nil {
		return nil, err
	}
	defer i1.Close()

	// Partial outputs are removed unless both were written and closed.
	var written bool
	out1, err := fastq.Create(p.OutR1)
	if err != nil {
		return nil, err
	}
	defer discard(out1, p.OutR1, &written)
	out2, err := fastq.Create(p.OutR2)
	if err != nil {
		return nil, err
	}
	defer discard(out2, p.OutR2, &written)

	log.Printf("demux %s + %s by %s", p.R1, p.R2, p.I1)
	log.Printf("RX/QX mate fields are left empty")

	computed := ex.Computations()
	d := New(ex, stats.New())
	n, err := d.Run(r1, r2, i1, out1, out2)
	if err != nil {
		return nil, err
	}
	if err := out1.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", p.OutR1, err)
	}
	if err := out2.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", p.OutR2, err)
	}
	written = true

	table := d.Table()
	if err := writeLog(p.ClearLog, table.WriteClear); err != nil {
		return nil, err
	}
	if err := writeLog(p.UnclearLog, table.WriteUnclear); err != nil {
		return nil, err
	}
	if opt.XLSX {
		if err := table.WriteXLSX(p.XLSX); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.XLSX, err)
		}
	}

	exact, corrected, unclear := table.Summary()
	log.Printf("%d read pairs: %d correct, %d corrected, %d unclear, %d edit distances", n, exact, corrected, unclear, ex.Computations()-computed)
	return table, nil
}

func discard(f *fastq.OutFile, path string, written *bool) {
	f.Close()
	if *written {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove %s: %v", path, err)
	}
}

func writeLog(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

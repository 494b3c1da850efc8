package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	simple_util "github.com/liserjrqlxue/simple-util"

	"github.com/liserjrqlxue/demultBCAC/barcode"
	"github.com/liserjrqlxue/demultBCAC/demux"
)

var (
	bcA = flag.String(
		"bcA",
		"BC_A.txt",
		"barcode A table",
	)
	bcC = flag.String(
		"bcC",
		"BC_C.txt",
		"barcode C table",
	)
	list = flag.String(
		"list",
		"",
		"lane list with columns input and output, replaces the two positional prefixes",
	)
	minLen = flag.Int(
		"minLen",
		barcode.DefaultLayout.MinLength,
		"index reads shorter than this are unclear",
	)
	cStart = flag.Int(
		"cStart",
		barcode.DefaultLayout.CStart,
		"barcode C start in index read",
	)
	cEnd = flag.Int(
		"cEnd",
		barcode.DefaultLayout.CEnd,
		"barcode C end in index read, -1 for end of read",
	)
	aStart = flag.Int(
		"aStart",
		barcode.DefaultLayout.AStart,
		"barcode A start in index read",
	)
	aEnd = flag.Int(
		"aEnd",
		barcode.DefaultLayout.AEnd,
		"barcode A end in index read, -1 for end of read",
	)
	xlsx = flag.Bool(
		"xlsx",
		false,
		"also write <output>_BC.xlsx",
	)
	progress = flag.Bool(
		"progress",
		false,
		"show progress of R1 on stderr",
	)
	logFile = flag.String(
		"log",
		"",
		"output log file",
	)
	cpuProfile = flag.String(
		"cpu",
		"",
		"cpu profile",
	)
	memProfile = flag.String(
		"mem",
		"",
		"mem profile",
	)
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <inputPrefix> <outputPrefix>\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s [options] -list lanes.tsv\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *logFile != "" {
		logF, err := os.Create(*logFile)
		simple_util.CheckErr(err)
		defer simple_util.DeferClose(logF)
		log.SetOutput(logF)
	}
	log.SetFlags(log.Ldate | log.Ltime)
	log.Printf("Start:%+v", os.Args)

	var lanes []*Lane
	switch {
	case *list != "":
		lanes = parseLaneList(*list)
	case flag.NArg() == 2:
		lanes = []*Lane{newLane("", flag.Arg(0), flag.Arg(1))}
	default:
		flag.Usage()
		log.Printf("<inputPrefix> <outputPrefix> or -list required!")
		os.Exit(2)
	}

	if !checkInputs(lanes, *bcA, *bcC) {
		os.Exit(1)
	}

	dictA, err := barcode.LoadFile(*bcA)
	if err != nil {
		log.Fatalf("load barcodes A: %v", err)
	}
	dictC, err := barcode.LoadFile(*bcC)
	if err != nil {
		log.Fatalf("load barcodes C: %v", err)
	}
	log.Printf("Loaded barcodes A: %d, C: %d", dictA.Len(), dictC.Len())

	layout := barcode.Layout{
		CStart:    *cStart,
		CEnd:      *cEnd,
		AStart:    *aStart,
		AEnd:      *aEnd,
		MinLength: *minLen,
	}
	resA, err := barcode.NewResolver(dictA, "A")
	if err != nil {
		log.Fatalf("load barcodes A: %v", err)
	}
	resC, err := barcode.NewResolver(dictC, "C")
	if err != nil {
		log.Fatalf("load barcodes C: %v", err)
	}
	ex, err := barcode.NewExtractor(layout, resA, resC)
	if err != nil {
		log.Fatal(err)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		simple_util.CheckErr(pprof.StartCPUProfile(f))
		defer pprof.StopCPUProfile()
	}

	createDir(lanes)
	var opt = demux.Options{XLSX: *xlsx, Progress: *progress}
	for _, lane := range lanes {
		log.Printf("lane[%s] %s -> %s", lane.Name, lane.Input, lane.Output)
		table, err := demux.RunLane(lane.Paths, ex, opt)
		if err != nil {
			pprof.StopCPUProfile()
			log.Fatalf("lane[%s]: %v", lane.Name, err)
		}
		lane.Reads = table.Total()
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal(err)
		}
		runtime.GC()
		simple_util.CheckErr(pprof.WriteHeapProfile(f))
		defer simple_util.DeferClose(f)
	}

	log.Printf("lane\treads\n")
	for _, lane := range lanes {
		log.Printf("%s\t%d\n", lane.Name, lane.Reads)
	}
	log.Printf("End")
}

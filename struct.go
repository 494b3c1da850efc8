package main

import (
	"path/filepath"

	"github.com/liserjrqlxue/demultBCAC/demux"
)

type Lane struct {
	Name   string
	Input  string
	Output string
	Paths  demux.Paths
	// read pairs written
	Reads int64
}

func newLane(name, input, output string) *Lane {
	if name == "" {
		name = filepath.Base(output)
	}
	return &Lane{
		Name:   name,
		Input:  input,
		Output: output,
		Paths:  demux.LanePaths(input, output),
	}
}

package main

import (
	"log"
	"os"
	"path/filepath"

	simple_util "github.com/liserjrqlxue/simple-util"
)

// checkInputs reports every missing input before any lane starts.
func checkInputs(lanes []*Lane, tables ...string) bool {
	var files = append([]string{}, tables...)
	for _, lane := range lanes {
		files = append(files, lane.Paths.Inputs()...)
	}
	var ok = true
	for _, file := range files {
		if !simple_util.FileExists(file) {
			log.Printf("Error: Cannot open file %s", file)
			ok = false
		}
	}
	return ok
}

func createDir(lanes []*Lane) {
	for _, lane := range lanes {
		simple_util.CheckErr(os.MkdirAll(filepath.Dir(lane.Output), 0755))
	}
}

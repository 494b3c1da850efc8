package main

import (
	"log"

	"github.com/liserjrqlxue/goUtil/textUtil"
)

// parseLaneList reads a tab separated list with a header row holding the
// columns input and output, and optionally name.
func parseLaneList(list string) (lanes []*Lane) {
	var (
		laneInfo, _ = textUtil.File2MapArray(list, "\t", nil)
		outputs     = make(map[string]bool)
	)
	for i, item := range laneInfo {
		input := item["input"]
		output := item["output"]
		if input == "" || output == "" {
			log.Fatalf("%s: row %d needs input and output", list, i+2)
		}
		if outputs[output] {
			log.Fatal("dup output:", output)
		}
		outputs[output] = true
		lanes = append(lanes, newLane(item["name"], input, output))
	}
	if len(lanes) == 0 {
		log.Fatalf("%s: no lanes", list)
	}
	return
}

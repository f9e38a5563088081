package main

import (
	"flag"
	"fmt"
	"log"

	"slotbench/pkg/dataset"
)

const maxSlotsPrinted = 20

func main() {
	input := flag.String("input", "data.db", "dataset file to inspect")
	flag.Parse()

	ds, err := dataset.Load(*input)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	fmt.Printf("requested range: [%d, %d)\n", ds.StartSlot, ds.EndSlot)
	fmt.Printf("records: %d, total keys: %d\n", len(ds.Records), ds.TotalKeys())

	ix := dataset.NewIndex(ds)
	if lo, hi, ok := ix.Bounds(); ok {
		fmt.Printf("slots present: %d .. %d\n", lo, hi)
	}

	printed := 0
	ix.Ascend(func(rec dataset.Record) bool {
		if printed >= maxSlotsPrinted {
			fmt.Printf("... and %d more\n", ix.Len()-maxSlotsPrinted)
			return false
		}
		fmt.Printf("  slot %d: %d keys\n", rec.Slot, len(rec.Keys))
		printed++
		return true
	})
}

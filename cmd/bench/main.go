package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"slotbench/pkg/bench"
	"slotbench/pkg/config"
	"slotbench/pkg/dataset"
)

func main() {
	input := flag.String("input", "data.db", "input dataset file")
	configPath := flag.String("config", "", "config file path")
	seed := flag.Uint64("seed", 42, "seed for the reference-set generator")
	size := flag.Int("size", 0, "reference set size (default: from config file)")
	iters := flag.Int("iters", 0, "iterations per strategy (default: from config file)")
	workers := flag.Int("workers", runtime.NumCPU(), "workers for the parallel strategy")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *size == 0 {
		*size = cfg.Bench.SetSize
	}
	if *iters == 0 {
		*iters = cfg.Bench.Iterations
	}

	if *size < 0 {
		log.Fatalf("size must be non-negative, got %d", *size)
	}
	if *iters < 1 {
		log.Fatalf("iters must be positive, got %d", *iters)
	}
	if *workers < 1 {
		log.Fatalf("workers must be positive, got %d", *workers)
	}

	t0 := time.Now()
	ds, err := dataset.Load(*input)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	fmt.Printf("loaded %d slots (%d keys) in %v\n", len(ds.Records), ds.TotalKeys(), time.Since(t0))

	ix := dataset.NewIndex(ds)

	set, fill := bench.BuildSet(*size, *seed)
	fmt.Printf("filled reference set with %d keys in %v\n", set.Len(), fill)

	fmt.Printf("sequential:   %s\n", bench.RunSequential(ix, set, *iters))
	fmt.Printf("parallel(%d): %s\n", *workers, bench.RunParallel(ix, set, *iters, *workers))
}

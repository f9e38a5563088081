package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"slotbench/pkg/dataset"
)

// Result aggregates one strategy's run. Matches is deterministic for a
// fixed dataset and set; only the durations vary between runs.
type Result struct {
	Slots      int
	TotalOps   uint64
	Iterations int
	PerIter    time.Duration
	PerSlot    time.Duration
	PerKey     time.Duration
	Matches    uint64
}

func (r Result) String() string {
	return fmt.Sprintf("total slots: %d, total ops: %d, iters: %d, per iter: %v, per slot: %v, per key: %v (matches: %d)",
		r.Slots, r.TotalOps, r.Iterations, r.PerIter, r.PerSlot, r.PerKey, r.Matches)
}

func newResult(slots int, totalOps uint64, iters int, elapsed time.Duration, matches uint64) Result {
	r := Result{
		Slots:      slots,
		TotalOps:   totalOps,
		Iterations: iters,
		PerIter:    elapsed / time.Duration(iters),
		Matches:    matches,
	}
	if slots > 0 {
		r.PerSlot = r.PerIter / time.Duration(slots)
	}
	if totalOps > 0 {
		r.PerKey = elapsed / time.Duration(totalOps)
	}
	return r
}

// RunSequential checks every key of every record against the set, iters
// times, on a single goroutine.
func RunSequential(ix *dataset.Index, set *Set, iters int) Result {
	if iters < 1 {
		iters = 1
	}
	t0 := time.Now()
	var totalOps, matches uint64
	for i := 0; i < iters; i++ {
		ix.Ascend(func(rec dataset.Record) bool {
			totalOps += uint64(len(rec.Keys))
			for _, k := range rec.Keys {
				if set.Contains(k) {
					matches++
				}
			}
			return true
		})
	}
	return newResult(ix.Len(), totalOps, iters, time.Since(t0), matches)
}

// RunParallel performs the same checks with records partitioned across
// workers. Workers only read the set; per-worker counters are reduced
// into the shared totals once per chunk.
func RunParallel(ix *dataset.Index, set *Set, iters, workers int) Result {
	if iters < 1 {
		iters = 1
	}
	if workers < 1 {
		workers = 1
	}

	records := make([]dataset.Record, 0, ix.Len())
	ix.Ascend(func(rec dataset.Record) bool {
		records = append(records, rec)
		return true
	})

	t0 := time.Now()
	var totalOps, matches uint64
	for i := 0; i < iters; i++ {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := len(records) * w / workers
			hi := len(records) * (w + 1) / workers
			if lo == hi {
				continue
			}
			wg.Add(1)
			go func(chunk []dataset.Record) {
				defer wg.Done()
				var ops, hits uint64
				for _, rec := range chunk {
					ops += uint64(len(rec.Keys))
					for _, k := range rec.Keys {
						if set.Contains(k) {
							hits++
						}
					}
				}
				atomic.AddUint64(&totalOps, ops)
				atomic.AddUint64(&matches, hits)
			}(records[lo:hi])
		}
		wg.Wait()
	}
	return newResult(len(records), totalOps, iters, time.Since(t0), matches)
}

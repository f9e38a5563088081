package downloader

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"slotbench/pkg/common"
	"slotbench/pkg/dataset"
)

// Fetcher retrieves the keys referenced by one slot's block. rpc.Client
// implements it; tests substitute their own.
type Fetcher interface {
	BlockKeys(ctx context.Context, slot uint64) ([]common.Key, error)
}

// Summary describes one completed batch.
type Summary struct {
	Attempted   uint64
	Returned    uint64
	Failed      uint64
	MaxInFlight int64
	Elapsed     time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("slots attempted: %d, returned: %d, elapsed: %v", s.Attempted, s.Returned, s.Elapsed)
}

// Downloader fetches slot ranges with a bounded number of in-flight
// requests. A failed slot is dropped from the result; the batch never
// aborts because of one slot.
type Downloader struct {
	fetcher     Fetcher
	concurrency int
}

func New(fetcher Fetcher, concurrency int) (*Downloader, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("downloader: concurrency must be positive, got %d", concurrency)
	}
	return &Downloader{fetcher: fetcher, concurrency: concurrency}, nil
}

// Fetch downloads the key lists for slots in [start, start+count).
// Records land in completion order. There is no per-slot retry here:
// a slot either contributes one record or is counted as failed.
func (d *Downloader) Fetch(ctx context.Context, start, count uint64) (*dataset.Dataset, Summary) {
	t0 := time.Now()
	stats := NewFetchStats()

	jobs := make(chan uint64)
	var mu sync.Mutex
	records := make([]dataset.Record, 0, count)

	var wg sync.WaitGroup
	for i := 0; i < d.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for slot := range jobs {
				stats.RecordStart()
				keys, err := d.fetcher.BlockKeys(ctx, slot)
				if err != nil {
					stats.RecordDone(false)
					log.Printf("slot %d dropped: %v", slot, err)
					continue
				}
				stats.RecordDone(true)

				mu.Lock()
				records = append(records, dataset.Record{Slot: slot, Keys: keys})
				mu.Unlock()
			}
		}()
	}

	for slot := start; slot < start+count; slot++ {
		jobs <- slot
	}
	close(jobs)
	wg.Wait()

	ds := &dataset.Dataset{
		Records:   records,
		StartSlot: start,
		EndSlot:   start + count,
	}
	return ds, Summary{
		Attempted:   stats.Attempted(),
		Returned:    stats.Returned(),
		Failed:      stats.Failed(),
		MaxInFlight: stats.MaxInFlight(),
		Elapsed:     time.Since(t0),
	}
}

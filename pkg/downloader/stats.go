package downloader

import "sync/atomic"

// FetchStats tracks one batch's fetch counters. inFlight carries a
// high-water mark so the concurrency bound is observable after the fact.
type FetchStats struct {
	attempted   uint64
	returned    uint64
	failed      uint64
	inFlight    int64
	maxInFlight int64
}

func NewFetchStats() *FetchStats {
	return &FetchStats{}
}

func (fs *FetchStats) RecordStart() {
	atomic.AddUint64(&fs.attempted, 1)
	cur := atomic.AddInt64(&fs.inFlight, 1)
	for {
		max := atomic.LoadInt64(&fs.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt64(&fs.maxInFlight, max, cur) {
			return
		}
	}
}

func (fs *FetchStats) RecordDone(ok bool) {
	atomic.AddInt64(&fs.inFlight, -1)
	if ok {
		atomic.AddUint64(&fs.returned, 1)
	} else {
		atomic.AddUint64(&fs.failed, 1)
	}
}

func (fs *FetchStats) Attempted() uint64 {
	return atomic.LoadUint64(&fs.attempted)
}

func (fs *FetchStats) Returned() uint64 {
	return atomic.LoadUint64(&fs.returned)
}

func (fs *FetchStats) Failed() uint64 {
	return atomic.LoadUint64(&fs.failed)
}

func (fs *FetchStats) MaxInFlight() int64 {
	return atomic.LoadInt64(&fs.maxInFlight)
}

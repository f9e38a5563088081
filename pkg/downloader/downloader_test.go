package downloader

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"slotbench/pkg/common"
)

type fakeFetcher struct {
	fn       func(slot uint64) ([]common.Key, error)
	inFlight int64
	maxSeen  int64
}

func (f *fakeFetcher) BlockKeys(_ context.Context, slot uint64) ([]common.Key, error) {
	cur := atomic.AddInt64(&f.inFlight, 1)
	for {
		max := atomic.LoadInt64(&f.maxSeen)
		if cur <= max || atomic.CompareAndSwapInt64(&f.maxSeen, max, cur) {
			break
		}
	}
	defer atomic.AddInt64(&f.inFlight, -1)
	return f.fn(slot)
}

func keyForSlot(slot uint64) common.Key {
	var k common.Key
	k[0] = byte(slot)
	k[1] = byte(slot >> 8)
	return k
}

func TestFetchCollectsAllSlots(t *testing.T) {
	f := &fakeFetcher{fn: func(slot uint64) ([]common.Key, error) {
		return []common.Key{keyForSlot(slot)}, nil
	}}
	d, err := New(f, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ds, sum := d.Fetch(context.Background(), 100, 50)
	if sum.Attempted != 50 || sum.Returned != 50 || sum.Failed != 0 {
		t.Fatalf("summary: %+v", sum)
	}
	if len(ds.Records) != 50 {
		t.Fatalf("got %d records", len(ds.Records))
	}
	if ds.StartSlot != 100 || ds.EndSlot != 150 {
		t.Errorf("range: [%d, %d)", ds.StartSlot, ds.EndSlot)
	}

	seen := make(map[uint64]bool)
	for _, rec := range ds.Records {
		if rec.Slot < 100 || rec.Slot >= 150 {
			t.Errorf("slot %d outside requested range", rec.Slot)
		}
		if seen[rec.Slot] {
			t.Errorf("slot %d fetched twice", rec.Slot)
		}
		seen[rec.Slot] = true
		if len(rec.Keys) != 1 || rec.Keys[0] != keyForSlot(rec.Slot) {
			t.Errorf("slot %d: wrong keys", rec.Slot)
		}
	}
}

func TestFetchZeroCount(t *testing.T) {
	f := &fakeFetcher{fn: func(uint64) ([]common.Key, error) {
		t.Error("fetcher should not be called for count=0")
		return nil, nil
	}}
	d, _ := New(f, 2)

	ds, sum := d.Fetch(context.Background(), 10, 0)
	if sum.Attempted != 0 || sum.Returned != 0 {
		t.Errorf("summary: %+v", sum)
	}
	if len(ds.Records) != 0 {
		t.Errorf("got %d records", len(ds.Records))
	}
}

func TestFetchAllSlotsFail(t *testing.T) {
	f := &fakeFetcher{fn: func(slot uint64) ([]common.Key, error) {
		return nil, fmt.Errorf("slot %d was skipped", slot)
	}}
	d, _ := New(f, 3)

	ds, sum := d.Fetch(context.Background(), 0, 25)
	if sum.Attempted != 25 {
		t.Errorf("attempted: got %d, want 25", sum.Attempted)
	}
	if sum.Returned != 0 || sum.Failed != 25 {
		t.Errorf("summary: %+v", sum)
	}
	if len(ds.Records) != 0 {
		t.Errorf("expected empty dataset, got %d records", len(ds.Records))
	}
}

func TestFetchPartialFailure(t *testing.T) {
	f := &fakeFetcher{fn: func(slot uint64) ([]common.Key, error) {
		if slot%3 == 0 {
			return nil, errors.New("pruned")
		}
		return []common.Key{keyForSlot(slot)}, nil
	}}
	d, _ := New(f, 4)

	ds, sum := d.Fetch(context.Background(), 0, 30)
	if sum.Attempted != 30 {
		t.Errorf("attempted: got %d", sum.Attempted)
	}
	if sum.Returned != 20 || sum.Failed != 10 {
		t.Errorf("summary: %+v", sum)
	}
	if len(ds.Records) != 20 {
		t.Errorf("got %d records, want 20", len(ds.Records))
	}
	for _, rec := range ds.Records {
		if rec.Slot%3 == 0 {
			t.Errorf("failed slot %d should not appear", rec.Slot)
		}
	}
}

func TestFetchRespectsConcurrencyBound(t *testing.T) {
	const bound = 4
	f := &fakeFetcher{fn: func(slot uint64) ([]common.Key, error) {
		time.Sleep(time.Millisecond)
		return []common.Key{keyForSlot(slot)}, nil
	}}
	d, _ := New(f, bound)

	_, sum := d.Fetch(context.Background(), 0, 200)
	if f.maxSeen > bound {
		t.Errorf("observed %d simultaneous fetches, bound is %d", f.maxSeen, bound)
	}
	if sum.MaxInFlight > bound {
		t.Errorf("stats saw %d in flight, bound is %d", sum.MaxInFlight, bound)
	}
	if f.maxSeen < 2 {
		t.Errorf("expected some parallelism, max in flight was %d", f.maxSeen)
	}
}

func TestNewRejectsBadConcurrency(t *testing.T) {
	for _, c := range []int{0, -1} {
		if _, err := New(&fakeFetcher{}, c); err == nil {
			t.Errorf("expected error for concurrency %d", c)
		}
	}
}

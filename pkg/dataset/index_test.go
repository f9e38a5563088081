package dataset

import "testing"

func TestIndexAscendsInSlotOrder(t *testing.T) {
	ix := NewIndex(testDataset())

	if ix.Len() != 4 {
		t.Fatalf("len: got %d", ix.Len())
	}

	var slots []uint64
	ix.Ascend(func(rec Record) bool {
		slots = append(slots, rec.Slot)
		return true
	})
	want := []uint64{100, 101, 102, 103}
	for i, s := range want {
		if slots[i] != s {
			t.Fatalf("slot order: got %v, want %v", slots, want)
		}
	}

	lo, hi, ok := ix.Bounds()
	if !ok || lo != 100 || hi != 103 {
		t.Errorf("bounds: got [%d, %d] ok=%v", lo, hi, ok)
	}
}

func TestIndexEmpty(t *testing.T) {
	ix := NewIndex(&Dataset{})
	if ix.Len() != 0 {
		t.Errorf("len: got %d", ix.Len())
	}
	if _, _, ok := ix.Bounds(); ok {
		t.Error("bounds of empty index should report ok=false")
	}
	called := false
	ix.Ascend(func(Record) bool {
		called = true
		return true
	})
	if called {
		t.Error("ascend over empty index should not call fn")
	}
}

func TestIndexAscendEarlyStop(t *testing.T) {
	ix := NewIndex(testDataset())
	visits := 0
	ix.Ascend(func(rec Record) bool {
		visits++
		return visits < 2
	})
	if visits != 2 {
		t.Errorf("expected early stop after 2 visits, got %d", visits)
	}
}

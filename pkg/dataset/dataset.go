package dataset

import "slotbench/pkg/common"

// Record holds the distinct keys extracted from one slot's block.
// Never mutated after the downloader creates it.
type Record struct {
	Slot uint64
	Keys []common.Key
}

// Dataset is an ordered collection of per-slot key lists. Records appear
// in fetch-completion order, not slot order; use Index for a slot-ordered
// view.
type Dataset struct {
	Records []Record

	// Requested slot range [StartSlot, EndSlot). Because failed slots are
	// dropped, len(Records) may be less than EndSlot-StartSlot.
	StartSlot uint64
	EndSlot   uint64
}

// TotalKeys returns the number of keys summed over all records.
func (d *Dataset) TotalKeys() int {
	total := 0
	for _, rec := range d.Records {
		total += len(rec.Keys)
	}
	return total
}

package dataset

import "github.com/google/btree"

type item struct {
	rec Record
}

func (i item) Less(than btree.Item) bool {
	return i.rec.Slot < than.(item).rec.Slot
}

// Index is a slot-ordered view over a dataset's records. The dataset
// itself keeps completion order; callers that want slot order go through
// here.
type Index struct {
	tree *btree.BTree
}

func NewIndex(ds *Dataset) *Index {
	tree := btree.New(32)
	for _, rec := range ds.Records {
		tree.ReplaceOrInsert(item{rec: rec})
	}
	return &Index{tree: tree}
}

func (ix *Index) Len() int {
	return ix.tree.Len()
}

// Ascend visits records in increasing slot order until fn returns false.
func (ix *Index) Ascend(fn func(rec Record) bool) {
	ix.tree.Ascend(func(i btree.Item) bool {
		return fn(i.(item).rec)
	})
}

// Bounds returns the smallest and largest slot present. ok is false for
// an empty index.
func (ix *Index) Bounds() (min, max uint64, ok bool) {
	lo, hi := ix.tree.Min(), ix.tree.Max()
	if lo == nil || hi == nil {
		return 0, 0, false
	}
	return lo.(item).rec.Slot, hi.(item).rec.Slot, true
}

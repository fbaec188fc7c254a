package vectordb

// VectorIndex is the capability set a vector index variant exposes to a
// Collection: add a vector and release any held resources.
type VectorIndex interface {
	Add(r VectorRecord) error
	Close()
}

// FlatVectorIndex stores every vector of one collection in a single
// chain without clustering or quantization.
type FlatVectorIndex struct {
	pager      *Pager
	root       PageNum
	dimensions uint32
	manager    *ItemManager
}

// OpenFlatVectorIndex anchors a flat index at root, an already-allocated
// vector page.
func OpenFlatVectorIndex(pager *Pager, root PageNum, dimensions uint32) *FlatVectorIndex {
	return &FlatVectorIndex{
		pager:      pager,
		root:       root,
		dimensions: dimensions,
		manager:    NewItemManager(pager, ItemKindVector, root),
	}
}

func (idx *FlatVectorIndex) Add(r VectorRecord) error {
	return idx.manager.AppendVector(r, QuantizationNone)
}

// Close releases any resources the index holds. FlatVectorIndex pins
// pages only for the duration of a single Add/All call, so Close is a
// no-op; it exists to satisfy VectorIndex.
func (idx *FlatVectorIndex) Close() {}

// All iterates every vector in the chain in on-disk order.
func (idx *FlatVectorIndex) All() ([]VectorRecord, error) {
	cursor, err := NewCursor(idx.pager, ItemKindVector, idx.root)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var out []VectorRecord
	err = cursor.Walk(func(pageNum PageNum, index uint32, slot []byte) bool {
		out = append(out, decodeVectorRecord(slot, idx.dimensions))
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// invertedFileIndex is a declared but unimplemented ANN variant; its
// constructor is the only call site and always fails.
type invertedFileIndex struct{}

func NewInvertedFileIndex(pager *Pager, root PageNum, dimensions uint32) (*invertedFileIndex, error) {
	return nil, ErrUnimplemented
}

func (idx *invertedFileIndex) Add(r VectorRecord) error { return ErrUnimplemented }
func (idx *invertedFileIndex) Close()                   {}

package vectordb

import "testing"

func TestFlatVectorIndexAddAndAll(t *testing.T) {
	storage := newMemStorage(DefaultPageSize)
	pager, err := OpenPager(storage, true)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	dims := uint32(2)
	root, err := pager.NewPage(ItemKindVector, NoPage, uint32(vectorRecordSize(dims)))
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	rootNum := pageNumOf(root.buf)
	pager.ReleasePage(root)

	index := OpenFlatVectorIndex(pager, rootNum, dims)
	for i := uint32(0); i < 3; i++ {
		rec := VectorRecord{ID: i, Position: []float32{float32(i), float32(i) * 2}}
		if err := index.Add(rec); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	got, err := index.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(got))
	}
	for i, v := range got {
		if v.ID != uint32(i) {
			t.Fatalf("vector %d: id = %d, want %d", i, v.ID, i)
		}
	}
}

func TestInvertedFileIndexUnimplemented(t *testing.T) {
	storage := newMemStorage(DefaultPageSize)
	pager, err := OpenPager(storage, true)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := NewInvertedFileIndex(pager, NoPage, 3); err != ErrUnimplemented {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
}

package vectordb

import "testing"

// TestItemManagerOverflowAllocatesOnePage mirrors scenario 2: with a
// small page size and item_size, inserting enough vectors to overflow
// one page should allocate exactly one overflow page.
func TestItemManagerOverflowAllocatesOnePage(t *testing.T) {
	const pageSize = 256
	const dims = 3

	storage := newMemStorage(pageSize)
	pager, err := OpenPagerWithPageSize(storage, pageSize)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	itemSize := uint32(vectorRecordSize(dims))
	root, err := pager.NewPage(ItemKindVector, NoPage, itemSize)
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	rootNum := pageNumOf(root.buf)
	slotsPerPage := root.slots
	pager.ReleasePage(root)

	manager := NewItemManager(pager, ItemKindVector, rootNum)

	const total = 20
	for i := uint32(0); i < total; i++ {
		rec := VectorRecord{ID: i, Position: []float32{1, 2, 3}}
		if err := manager.AppendVector(rec, QuantizationNone); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	if total <= slotsPerPage {
		t.Fatalf("test assumption violated: slotsPerPage=%d >= total=%d", slotsPerPage, total)
	}

	pageCount := 0
	for pn := rootNum; pn != NoPage; {
		page, err := pager.GetPage(pn, ItemKindVector)
		if err != nil {
			t.Fatalf("walk chain failed: %v", err)
		}
		pageCount++
		next := decodePageHeader(page.buf).NextPage
		pager.ReleasePage(page)
		pn = next
	}

	if pageCount != 2 {
		t.Fatalf("expected exactly 2 pages in the chain, got %d", pageCount)
	}
}

func TestItemManagerAppendCollectionAndWalk(t *testing.T) {
	storage := newMemStorage(DefaultPageSize)
	pager, err := OpenPager(storage, true)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	root := pager.FirstCollectionPage()
	manager := NewItemManager(pager, ItemKindCollection, root)

	for i := uint32(0); i < 3; i++ {
		rec := CollectionRecord{ID: i, Dimensions: i + 1}
		if err := manager.AppendCollection(rec); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	cursor, err := NewCursor(pager, ItemKindCollection, root)
	if err != nil {
		t.Fatalf("cursor failed: %v", err)
	}
	defer cursor.Close()

	var ids []uint32
	err = cursor.Walk(func(pageNum PageNum, index uint32, slot []byte) bool {
		ids = append(ids, decodeCollectionRecord(slot).ID)
		return true
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 records, got %d", len(ids))
	}
}

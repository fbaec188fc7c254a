package vectordb

import (
	"math/bits"
	"testing"
)

func TestItemPageInsertGetCollection(t *testing.T) {
	buf := make([]byte, DefaultPageSize)
	page := initItemPage(buf, ItemKindCollection, 1, NoPage, uint32(collectionRecordSize))

	rec := CollectionRecord{ID: 42, Dimensions: 3, Quantization: QuantizationNone, IndexKind: IndexKindFlat, FirstChildPage: 0}
	if err := page.InsertCollection(0, rec); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := page.GetCollection(0)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}

	if err := page.InsertCollection(0, rec); err != ErrSlotOccupied {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
}

func TestItemPageBitmapMatchesItemCount(t *testing.T) {
	buf := make([]byte, DefaultPageSize)
	page := initItemPage(buf, ItemKindCollection, 1, NoPage, uint32(collectionRecordSize))

	for i := uint32(0); i < 5; i++ {
		rec := CollectionRecord{ID: i}
		if err := page.InsertCollection(i, rec); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	popcount := 0
	bmLen := bitmapBytes(page.slots)
	for i := 0; i < bmLen; i++ {
		popcount += bits.OnesCount8(page.buf[page.bitmapOff+i])
	}

	if uint32(popcount) != page.itemCount {
		t.Fatalf("item_count %d does not match bitmap popcount %d", page.itemCount, popcount)
	}

	for i := uint32(0); i < page.slots; i++ {
		_, err := page.GetCollection(i)
		present := err == nil
		if present != page.bitSet(i) {
			t.Fatalf("slot %d: get present=%v, bitmap bit=%v", i, present, page.bitSet(i))
		}
	}
}

func TestItemPageVectorBadPositionFormat(t *testing.T) {
	dims := uint32(3)
	buf := make([]byte, DefaultPageSize)
	page := initItemPage(buf, ItemKindVector, 1, NoPage, uint32(vectorRecordSize(dims)))

	bad := VectorRecord{ID: 1, Position: []float32{1, 2}}
	if err := page.InsertVector(0, bad, QuantizationNone); err != ErrBadPositionFormat {
		t.Fatalf("expected ErrBadPositionFormat, got %v", err)
	}
}

func TestItemPageVectorRoundTrip(t *testing.T) {
	dims := uint32(3)
	buf := make([]byte, DefaultPageSize)
	page := initItemPage(buf, ItemKindVector, 1, NoPage, uint32(vectorRecordSize(dims)))

	rec := VectorRecord{ID: 7, Position: []float32{1.5, -2.25, 3}}
	if err := page.InsertVector(0, rec, QuantizationNone); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := page.GetVector(0, dims)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("id mismatch: got %d, want %d", got.ID, rec.ID)
	}
	for i := range rec.Position {
		if got.Position[i] != rec.Position[i] {
			t.Fatalf("position[%d] mismatch: got %v, want %v", i, got.Position[i], rec.Position[i])
		}
	}
}

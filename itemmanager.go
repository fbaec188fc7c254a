package vectordb

// ItemManager is an append-only writer on top of a Cursor: it finds or
// creates room at the tail of a chain and inserts one item per call.
type ItemManager struct {
	pager *Pager
	kind  ItemKind
	root  PageNum
}

func NewItemManager(pager *Pager, kind ItemKind, root PageNum) *ItemManager {
	return &ItemManager{pager: pager, kind: kind, root: root}
}

// appendAt positions a cursor at the next empty slot across the chain,
// allocating one overflow page if every existing page is full, then
// calls write with the page and slot index to perform the actual typed
// insert. appendAt marks the page dirty once write succeeds.
func (m *ItemManager) appendAt(itemSize uint32, write func(page *itemPage, index uint32) error) error {
	cursor, err := NewCursor(m.pager, m.kind, m.root)
	if err != nil {
		return err
	}
	defer cursor.Close()

	err = cursor.NextEmptySlot()
	if err == ErrNoEmptySlots {
		if err := m.growChain(cursor, itemSize); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := write(cursor.Page(), cursor.Index()); err != nil {
		return err
	}
	m.pager.MarkDirty(cursor.Page())
	return nil
}

// growChain seeks to the terminal page of the cursor's chain, allocates
// a new tail page, links it, and repositions the cursor at index 0 of
// the new page.
func (m *ItemManager) growChain(cursor *Cursor, itemSize uint32) error {
	if err := cursor.SeekToEnd(); err != nil {
		return err
	}
	terminal := cursor.PageNum()

	newPage, err := m.pager.NewPage(m.kind, terminal, itemSize)
	if err != nil {
		return err
	}

	setNextPage(cursor.Page().buf, pageNumOf(newPage.buf))
	m.pager.MarkDirty(cursor.Page())
	m.pager.ReleasePage(cursor.page)

	cursor.page = newPage
	cursor.index = 0
	return nil
}

// AppendCollection inserts a collection record at the end of the chain.
func (m *ItemManager) AppendCollection(r CollectionRecord) error {
	return m.appendAt(collectionRecordSize, func(page *itemPage, index uint32) error {
		return page.InsertCollection(index, r)
	})
}

// AppendVector inserts a vector record at the end of the chain.
func (m *ItemManager) AppendVector(r VectorRecord, quant Quantization) error {
	itemSize := uint32(vectorRecordSize(uint32(len(r.Position))))
	return m.appendAt(itemSize, func(page *itemPage, index uint32) error {
		return page.InsertVector(index, r, quant)
	})
}

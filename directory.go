package vectordb

// CollectionDirectory is an ItemManager<collection> anchored at the
// file's first collection-directory page, keyed by integer id.
type CollectionDirectory struct {
	pager   *Pager
	root    PageNum
	manager *ItemManager
}

func OpenCollectionDirectory(pager *Pager, root PageNum) *CollectionDirectory {
	return &CollectionDirectory{
		pager:   pager,
		root:    root,
		manager: NewItemManager(pager, ItemKindCollection, root),
	}
}

// Add appends a new collection record, failing ErrCollectionAlreadyExists
// if id is already present.
func (d *CollectionDirectory) Add(id uint32, dimensions uint32) error {
	if _, err := d.Get(id); err == nil {
		return ErrCollectionAlreadyExists
	} else if err != ErrCollectionNotFound {
		return err
	}

	return d.manager.AppendCollection(CollectionRecord{
		ID:             id,
		Dimensions:     dimensions,
		Quantization:   QuantizationNone,
		IndexKind:      IndexKindFlat,
		FirstChildPage: NoPage,
	})
}

// Get linearly scans the chain for id, failing ErrCollectionNotFound if
// absent.
func (d *CollectionDirectory) Get(id uint32) (CollectionRecord, error) {
	var found CollectionRecord
	var ok bool

	cursor, err := NewCursor(d.pager, ItemKindCollection, d.root)
	if err != nil {
		return CollectionRecord{}, err
	}
	defer cursor.Close()

	err = cursor.Walk(func(pageNum PageNum, index uint32, slot []byte) bool {
		r := decodeCollectionRecord(slot)
		if r.ID == id {
			found = r
			ok = true
			return false
		}
		return true
	})
	if err != nil {
		return CollectionRecord{}, err
	}
	if !ok {
		return CollectionRecord{}, ErrCollectionNotFound
	}
	return found, nil
}

// Update locates the record by id and overwrites it in place, failing
// ErrCollectionNotFound if absent.
func (d *CollectionDirectory) Update(record CollectionRecord) error {
	cursor, err := NewCursor(d.pager, ItemKindCollection, d.root)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for {
		page := cursor.Page()
		for i := uint32(0); i < page.slots; i++ {
			if !page.bitSet(i) {
				continue
			}
			r, err := page.GetCollection(i)
			if err != nil {
				return err
			}
			if r.ID == record.ID {
				if err := page.UpdateCollection(i, record); err != nil {
					return err
				}
				d.pager.MarkDirty(page)
				return nil
			}
		}

		header := decodePageHeader(page.buf)
		if header.NextPage == NoPage {
			return ErrCollectionNotFound
		}
		if _, err := cursor.pinNext(); err != nil {
			return err
		}
	}
}

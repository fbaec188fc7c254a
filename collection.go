package vectordb

// Collection is a handle on one named vector collection: it validates
// incoming vectors against the collection's dimensionality and lazily
// instantiates the backing FlatVectorIndex on first insert.
type Collection struct {
	db     *Db
	record CollectionRecord
}

// Add validates r's dimensionality, allocates the collection's first
// vector page on first use, and appends r to the collection's index.
func (c *Collection) Add(r VectorRecord) error {
	if uint32(len(r.Position)) != c.record.Dimensions {
		return ErrInvalidDimensions
	}

	index, err := c.ensureIndex()
	if err != nil {
		return err
	}
	defer index.Close()

	return index.Add(r)
}

// All returns every vector currently stored in the collection, in
// on-disk order. An empty collection (no vectors added yet) returns nil.
func (c *Collection) All() ([]VectorRecord, error) {
	if c.record.FirstChildPage == NoPage {
		return nil, nil
	}
	index := OpenFlatVectorIndex(c.db.pager, c.record.FirstChildPage, c.record.Dimensions)
	return index.All()
}

// Dimensions reports the fixed vector length this collection accepts.
func (c *Collection) Dimensions() uint32 {
	return c.record.Dimensions
}

// ensureIndex returns the collection's FlatVectorIndex, allocating its
// first vector page and recording it into the directory if this is the
// first insert.
func (c *Collection) ensureIndex() (VectorIndex, error) {
	if c.record.IndexKind != IndexKindFlat {
		return nil, ErrUnimplemented
	}

	if c.record.FirstChildPage != NoPage {
		return OpenFlatVectorIndex(c.db.pager, c.record.FirstChildPage, c.record.Dimensions), nil
	}

	itemSize := uint32(vectorRecordSize(c.record.Dimensions))
	page, err := c.db.pager.NewPage(ItemKindVector, NoPage, itemSize)
	if err != nil {
		return nil, err
	}
	firstPage := pageNumOf(page.buf)
	c.db.pager.ReleasePage(page)

	c.record.FirstChildPage = firstPage
	if err := c.db.directory.Update(c.record); err != nil {
		return nil, err
	}

	return OpenFlatVectorIndex(c.db.pager, firstPage, c.record.Dimensions), nil
}

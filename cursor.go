package vectordb

// Cursor holds a single pinned position within a chained page list:
// (page, index). At most one page is pinned at any time; advancing
// across a page boundary pins the next page before releasing the old
// one, guaranteeing forward progress under a cache at capacity.
type Cursor struct {
	pager *Pager
	kind  ItemKind

	page  *itemPage
	index uint32
}

// NewCursor pins startPage and positions the cursor at index 0.
func NewCursor(pager *Pager, kind ItemKind, startPage PageNum) (*Cursor, error) {
	page, err := pager.GetPage(startPage, kind)
	if err != nil {
		return nil, err
	}
	return &Cursor{pager: pager, kind: kind, page: page, index: 0}, nil
}

// Close releases the cursor's currently pinned page.
func (c *Cursor) Close() {
	if c.page != nil {
		c.pager.ReleasePage(c.page)
		c.page = nil
	}
}

func (c *Cursor) PageNum() PageNum {
	return pageNumOf(c.page.buf)
}

func (c *Cursor) Index() uint32 {
	return c.index
}

// Page exposes the currently pinned page for direct get/insert/update.
func (c *Cursor) Page() *itemPage {
	return c.page
}

// pinNext advances onto next_page, releasing the old page only after the
// new one is pinned. Returns false if there is no next page.
func (c *Cursor) pinNext() (bool, error) {
	header := decodePageHeader(c.page.buf)
	if header.NextPage == NoPage {
		return false, nil
	}
	next, err := c.pager.GetPage(header.NextPage, c.kind)
	if err != nil {
		return false, err
	}
	c.pager.ReleasePage(c.page)
	c.page = next
	c.index = 0
	return true, nil
}

// pinPrev is the symmetric counterpart of pinNext.
func (c *Cursor) pinPrev() (bool, error) {
	header := decodePageHeader(c.page.buf)
	if header.PrevPage == NoPage {
		return false, nil
	}
	prev, err := c.pager.GetPage(header.PrevPage, c.kind)
	if err != nil {
		return false, err
	}
	c.pager.ReleasePage(c.page)
	c.page = prev
	c.index = 0
	return true, nil
}

// Next advances index; on overflowing the current page it hops to
// next_page. Returns false once the chain is exhausted, leaving the
// cursor on the last slot of the terminal page.
func (c *Cursor) Next() (bool, error) {
	c.index++
	if c.index < c.page.slots {
		return true, nil
	}
	ok, err := c.pinNext()
	if !ok {
		c.index = c.page.slots - 1
	}
	return ok, err
}

// Prev is the symmetric counterpart of Next.
func (c *Cursor) Prev() (bool, error) {
	if c.index > 0 {
		c.index--
		return true, nil
	}
	ok, err := c.pinPrev()
	if err != nil || !ok {
		return ok, err
	}
	c.index = c.page.slots - 1
	return true, nil
}

// SeekToStart follows prev_page links back to the head of the chain.
func (c *Cursor) SeekToStart() error {
	for {
		ok, err := c.pinPrev()
		if err != nil {
			return err
		}
		if !ok {
			c.index = 0
			return nil
		}
	}
}

// SeekToEnd follows next_page links to the tail of the chain.
func (c *Cursor) SeekToEnd() error {
	for {
		ok, err := c.pinNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// NextEmptySlot advances the cursor to the first slot with a clear
// bitmap bit, hopping across full pages. Fails NoEmptySlots only if the
// terminal page is full and has no successor.
func (c *Cursor) NextEmptySlot() error {
	for {
		if idx, ok := c.page.firstEmptySlot(); ok {
			c.index = idx
			return nil
		}
		ok, err := c.pinNext()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoEmptySlots
		}
	}
}

// ItemVisitor receives each occupied item as raw slot bytes during
// iteration.
type ItemVisitor func(pageNum PageNum, index uint32, slot []byte) (cont bool)

// Walk iterates occupied items starting from the cursor's current
// position, page by page, without pinning any page beyond the one the
// cursor already holds. Iteration is finite and non-restartable: it
// consumes the cursor.
func (c *Cursor) Walk(visit ItemVisitor) error {
	for {
		for c.index < c.page.slots {
			if c.page.bitSet(c.index) {
				if !visit(c.PageNum(), c.index, c.page.slotBytes(c.index)) {
					return nil
				}
			}
			c.index++
		}
		ok, err := c.pinNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

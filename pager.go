package vectordb

import "fmt"

// Pager glues Storage, PagePool, and PageCache: it owns the file, hands
// out pinned typed pages, and brokers allocation. The metadata page is
// held pinned for the pager's entire lifetime (I6).
type Pager struct {
	storage Storage
	pool    *PagePool
	cache   *PageCache

	pageSize uint32
	meta     metadataPage
	metaBuf  []byte
}

// OpenPager opens or creates the paging layer over storage using the
// default page size and cache size. created indicates whether the file
// was freshly initialized and therefore needs its metadata and first
// collection-directory page written.
func OpenPager(storage Storage, created bool) (*Pager, error) {
	if created {
		return createPager(storage, DefaultPageSize, DefaultCacheSize)
	}
	return openExistingPager(storage)
}

// OpenPagerWithPageSize creates a fresh paging layer with a
// caller-chosen page size, used by tests that need to exercise overflow
// behavior with a small page.
func OpenPagerWithPageSize(storage Storage, pageSize uint32) (*Pager, error) {
	return createPager(storage, pageSize, DefaultCacheSize)
}

// OpenPagerWithCacheSize creates a fresh paging layer with a
// caller-chosen cache capacity, used by tests that need to force
// eviction under a small cache.
func OpenPagerWithCacheSize(storage Storage, cacheSize uint32) (*Pager, error) {
	return createPager(storage, DefaultPageSize, cacheSize)
}

func createPager(storage Storage, pageSize, cacheSize uint32) (*Pager, error) {
	pager := &Pager{storage: storage, pageSize: pageSize}
	pager.pool = NewPagePool(pageSize)
	pager.cache = NewPageCache(int(cacheSize), pager.onEvict)

	pager.meta = metadataPage{
		PageSize:            pageSize,
		PageCount:           1,
		FirstCollectionPage: 1,
		FreeListStart:       NoPage,
		CacheSize:           cacheSize,
	}
	pager.metaBuf = pager.pool.Acquire()
	zero(pager.metaBuf)
	encodeMetadataPage(pager.meta, pager.metaBuf)
	pager.cache.Put(NoPage, pager.metaBuf, true)

	if err := pager.flushMetadataLocked(); err != nil {
		return nil, err
	}

	dirPage, err := pager.NewPage(ItemKindCollection, NoPage, uint32(collectionRecordSize))
	if err != nil {
		return nil, err
	}
	pager.ReleasePage(dirPage)
	return pager, nil
}

// openExistingPager assumes the file was created at DefaultPageSize, which
// holds for every file ever produced through Db.Open; OpenPagerWithPageSize
// is a test-only entry point whose files are never reopened.
func openExistingPager(storage Storage) (*Pager, error) {
	buf := make([]byte, DefaultPageSize)
	if err := storage.ReadPage(NoPage, buf); err != nil {
		return nil, err
	}
	meta, err := decodeMetadataPage(buf)
	if err != nil {
		return nil, err
	}

	pager := &Pager{storage: storage, pageSize: meta.PageSize}
	pager.pool = NewPagePool(meta.PageSize)
	pager.cache = NewPageCache(int(meta.CacheSize), pager.onEvict)
	pager.meta = meta
	pager.metaBuf = buf
	pager.cache.Put(NoPage, pager.metaBuf, false)

	return pager, nil
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// onEvict is the PageCache eviction callback: write back if dirty, then
// return the buffer to the pool. The metadata page's buffer is never
// pool-owned — Flush re-pins it immediately, so it must not be handed
// out by a later Acquire.
func (p *Pager) onEvict(pageNum PageNum, buf []byte, dirty bool) {
	if dirty {
		if err := p.storage.WritePage(pageNum, buf); err != nil {
			panic(fmt.Sprintf("write-back failed for page %d: %v", pageNum, err))
		}
	}
	if pageNum == NoPage {
		return
	}
	p.pool.Release(buf)
}

// NewPage acquires a zeroed buffer, assigns it the next page number,
// initializes it as an item page of the given kind, inserts it into the
// cache pinned+dirty, and returns the pinned item page.
func (p *Pager) NewPage(kind ItemKind, prevPage PageNum, itemSize uint32) (*itemPage, error) {
	buf := p.pool.Acquire()
	zero(buf)

	pageNum := PageNum(p.meta.PageCount)
	p.meta.PageCount++
	encodeMetadataPage(p.meta, p.metaBuf)
	p.cache.MarkDirty(NoPage)

	page := initItemPage(buf, kind, pageNum, prevPage, itemSize)
	p.cache.Put(pageNum, buf, true)
	return page, nil
}

// GetPage pins and returns the item page for pageNum, asserting it is of
// the expected kind.
func (p *Pager) GetPage(pageNum PageNum, kind ItemKind) (*itemPage, error) {
	if buf, ok := p.cache.Get(pageNum); ok {
		if PageType(buf[0]) != kind.pageType() {
			p.cache.Release(pageNum)
			return nil, ErrWrongPageType
		}
		return loadItemPage(buf), nil
	}

	if uint32(pageNum) >= p.meta.PageCount {
		return nil, ErrOutOfBounds
	}

	buf := p.pool.Acquire()
	if err := p.storage.ReadPage(pageNum, buf); err != nil {
		p.pool.Release(buf)
		return nil, err
	}
	if PageType(buf[0]) != kind.pageType() {
		// The byte read from disk does not match what the caller expects
		// for an already-allocated page: on-disk corruption.
		panic(fmt.Sprintf("page %d: on-disk type %v does not match expected %v", pageNum, PageType(buf[0]), kind.pageType()))
	}

	p.cache.Put(pageNum, buf, false)
	return loadItemPage(buf), nil
}

// ReleasePage decrements the ref count of the page the handle belongs to.
func (p *Pager) ReleasePage(page *itemPage) {
	p.cache.Release(pageNumOf(page.buf))
}

// MarkDirty flags the page the handle belongs to as dirty. Required
// after any mutation to a pinned page's bytes.
func (p *Pager) MarkDirty(page *itemPage) {
	p.cache.MarkDirty(pageNumOf(page.buf))
}

// FlushMode selects how aggressively Flush writes back cached pages.
type FlushMode int

const (
	FlushSoft FlushMode = iota
	FlushHard
)

// Flush writes back dirty pages. FlushSoft evicts only unpinned entries;
// FlushHard additionally forces out pinned dirty pages, including the
// metadata page, which is immediately re-pinned afterward so the pager
// can keep operating past a mid-lifetime flush (I6).
func (p *Pager) Flush(mode FlushMode) error {
	if mode == FlushHard {
		p.cache.FlushHard()
		p.cache.Put(NoPage, p.metaBuf, false)
		return nil
	}
	p.cache.Flush()
	return nil
}

func (p *Pager) flushMetadataLocked() error {
	return p.storage.WritePage(NoPage, p.metaBuf)
}

// Close hard-flushes the cache, including the permanently pinned
// metadata page.
func (p *Pager) Close() error {
	return p.Flush(FlushHard)
}

// PageCount reports the number of page slots currently allocated.
func (p *Pager) PageCount() uint32 {
	return p.meta.PageCount
}

// FirstCollectionPage reports the page number of the first
// collection-directory page (always 1).
func (p *Pager) FirstCollectionPage() PageNum {
	return p.meta.FirstCollectionPage
}

package vectordb

import (
	"io"
	"log"
	"os"
)

// Db is the top-level handle on one paged file. It owns the Pager and
// the CollectionDirectory anchored at page 1.
type Db struct {
	path      string
	closer    io.Closer
	pager     *Pager
	directory *CollectionDirectory
}

// Open opens path, creating it (and its initial metadata + directory
// pages) if it does not already exist.
func Open(path string) (*Db, error) {
	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}

	storage := newFileStorage(file, DefaultPageSize)
	db, err := openWithStorage(path, storage, created)
	if err != nil {
		file.Close()
		return nil, err
	}
	db.closer = file
	return db, nil
}

// openWithStorage builds a Db directly on top of an arbitrary Storage
// implementation, used by tests to run against an in-memory backend.
func openWithStorage(path string, storage Storage, created bool) (*Db, error) {
	pager, err := OpenPager(storage, created)
	if err != nil {
		return nil, err
	}

	db := &Db{
		path:  path,
		pager: pager,
	}
	db.directory = OpenCollectionDirectory(pager, pager.FirstCollectionPage())
	return db, nil
}

// CreateCollection registers a new collection of the given dimensionality,
// failing ErrCollectionAlreadyExists if id is already taken.
func (db *Db) CreateCollection(id uint32, dimensions uint32) (*Collection, error) {
	if err := db.directory.Add(id, dimensions); err != nil {
		return nil, err
	}
	return db.Collection(id)
}

// Collection returns a handle on an existing collection, failing
// ErrCollectionNotFound if absent.
func (db *Db) Collection(id uint32) (*Collection, error) {
	record, err := db.directory.Get(id)
	if err != nil {
		return nil, err
	}
	return &Collection{db: db, record: record}, nil
}

// Flush performs a hard flush: every dirty page, pinned or not, is
// written back.
func (db *Db) Flush() error {
	return db.pager.Flush(FlushHard)
}

// Close flushes and releases the underlying file handle.
func (db *Db) Close() {
	if err := db.pager.Close(); err != nil {
		log.Println("failed to flush on close:", err)
	}
	if db.closer != nil {
		db.closer.Close()
	}
}

package vectordb

import "encoding/binary"

// PageNum addresses a page within the file. Page 0 is always the metadata
// page; 0 also serves as the "no page" sentinel in prev_page/next_page
// chain links.
type PageNum uint32

const NoPage PageNum = 0

// PageType tags byte 0 of every page.
type PageType uint8

const (
	PageTypeMetadata   PageType = 0
	PageTypeCollection PageType = 1
	PageTypeCluster    PageType = 2
	PageTypeVector     PageType = 3
)

func (t PageType) String() string {
	switch t {
	case PageTypeMetadata:
		return "metadata"
	case PageTypeCollection:
		return "collection"
	case PageTypeCluster:
		return "cluster"
	case PageTypeVector:
		return "vector"
	default:
		return "unknown"
	}
}

// DefaultPageSize is the page size used for freshly created files.
const DefaultPageSize uint32 = 4096

// DefaultCacheSize is the number of cache slots reserved for freshly
// created files.
const DefaultCacheSize uint32 = 1024

// PageHeaderSize is the on-disk size, in bytes, of PageHeader.
const PageHeaderSize = 1 + 4 + 4 + 4

// PageHeader is the fixed prefix shared by every page on disk.
type PageHeader struct {
	PageType PageType
	PageNum  PageNum
	PrevPage PageNum
	NextPage PageNum
}

func encodePageHeader(h PageHeader, buf []byte) {
	buf[0] = byte(h.PageType)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(h.PageNum))
	binary.LittleEndian.PutUint32(buf[5:9], uint32(h.PrevPage))
	binary.LittleEndian.PutUint32(buf[9:13], uint32(h.NextPage))
}

func decodePageHeader(buf []byte) PageHeader {
	return PageHeader{
		PageType: PageType(buf[0]),
		PageNum:  PageNum(binary.LittleEndian.Uint32(buf[1:5])),
		PrevPage: PageNum(binary.LittleEndian.Uint32(buf[5:9])),
		NextPage: PageNum(binary.LittleEndian.Uint32(buf[9:13])),
	}
}

func setPrevPage(buf []byte, p PageNum) {
	binary.LittleEndian.PutUint32(buf[5:9], uint32(p))
}

func setNextPage(buf []byte, p PageNum) {
	binary.LittleEndian.PutUint32(buf[9:13], uint32(p))
}

func pageNumOf(buf []byte) PageNum {
	return PageNum(binary.LittleEndian.Uint32(buf[1:5]))
}

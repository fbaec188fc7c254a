package vectordb

import "encoding/binary"

var metadataMagic = [6]byte{'a', 'b', 'c', 'd', 'e', 'f'}

const metadataVersion uint16 = 1

// metadataPage is the typed view over page 0.
type metadataPage struct {
	PageSize            uint32
	PageCount           uint32
	FirstCollectionPage PageNum
	FreeListStart       PageNum
	CacheSize           uint32
}

func encodeMetadataPage(m metadataPage, buf []byte) {
	encodePageHeader(PageHeader{PageType: PageTypeMetadata}, buf)
	off := PageHeaderSize
	copy(buf[off:off+6], metadataMagic[:])
	off += 6
	binary.LittleEndian.PutUint16(buf[off:off+2], metadataVersion)
	off += 2
	binary.LittleEndian.PutUint32(buf[off:off+4], m.PageSize)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], m.PageCount)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(m.FirstCollectionPage))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(m.FreeListStart))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], m.CacheSize)
}

func decodeMetadataPage(buf []byte) (metadataPage, error) {
	off := PageHeaderSize
	var magic [6]byte
	copy(magic[:], buf[off:off+6])
	off += 6
	version := binary.LittleEndian.Uint16(buf[off : off+2])
	off += 2
	if magic != metadataMagic || version != metadataVersion {
		return metadataPage{}, ErrCorruptMetadata
	}

	m := metadataPage{}
	m.PageSize = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	m.PageCount = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	m.FirstCollectionPage = PageNum(binary.LittleEndian.Uint32(buf[off : off+4]))
	off += 4
	m.FreeListStart = PageNum(binary.LittleEndian.Uint32(buf[off : off+4]))
	off += 4
	m.CacheSize = binary.LittleEndian.Uint32(buf[off : off+4])
	return m, nil
}

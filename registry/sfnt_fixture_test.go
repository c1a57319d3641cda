package registry

import (
	"encoding/binary"
	"testing"
)

// buildMinimalSFNT assembles a minimal, valid single-face SFNT buffer with
// just enough of head/hhea/hmtx/maxp/post/OS2/name/cmap for
// fontconfig.ParseFaces to accept it, under the given family name. It
// mirrors the synthetic font builder fontconfig's own parser tests use,
// rewritten against raw tag literals since the tag constants themselves are
// unexported outside that package.
func buildMinimalSFNT(t *testing.T, familyName string) []byte {
	t.Helper()

	const (
		tagHead = 0x68656164
		tagHhea = 0x68686561
		tagHmtx = 0x686D7478
		tagMaxp = 0x6D617870
		tagPost = 0x706F7374
		tagOS2  = 0x4F532F32
		tagName = 0x6E616D65
		tagCmap = 0x636D6170
	)

	head := make([]byte, 54)
	binary.BigEndian.PutUint16(head[18:20], 1000)

	// Two different advance widths, so the face is not detected as
	// monospace by its metrics.
	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:36], 2)

	hmtx := make([]byte, 8)
	binary.BigEndian.PutUint16(hmtx[0:2], 600)
	binary.BigEndian.PutUint16(hmtx[4:6], 500)

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp[0:4], 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:6], 2)

	post := make([]byte, 32)

	os2 := make([]byte, 78)
	binary.BigEndian.PutUint16(os2[4:6], 400)
	binary.BigEndian.PutUint16(os2[6:8], 5)
	binary.BigEndian.PutUint32(os2[42:46], 1) // Basic Latin

	name := buildMinimalNameTable(familyName)
	cmap := buildMinimalCmapTable()

	tables := map[uint32][]byte{
		tagHead: head,
		tagHhea: hhea,
		tagHmtx: hmtx,
		tagMaxp: maxp,
		tagPost: post,
		tagOS2:  os2,
		tagName: name,
		tagCmap: cmap,
	}

	tags := make([]uint32, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j-1] > tags[j]; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}

	numTables := len(tags)
	headerLen := 12 + 16*numTables
	offset := headerLen

	type placed struct {
		tag    uint32
		offset int
		length int
	}
	var placements []placed
	var body []byte
	for _, tag := range tags {
		data := tables[tag]
		placements = append(placements, placed{tag: tag, offset: offset, length: len(data)})
		body = append(body, data...)
		pad := (4 - len(data)%4) % 4
		body = append(body, make([]byte, pad)...)
		offset += len(data) + pad
	}

	out := make([]byte, headerLen)
	binary.BigEndian.PutUint32(out[0:4], 0x00010000)
	binary.BigEndian.PutUint16(out[4:6], uint16(numTables))
	for i, p := range placements {
		rec := out[12+16*i : 28+16*i]
		binary.BigEndian.PutUint32(rec[0:4], p.tag)
		binary.BigEndian.PutUint32(rec[4:8], 0)
		binary.BigEndian.PutUint32(rec[8:12], uint32(p.offset))
		binary.BigEndian.PutUint32(rec[12:16], uint32(p.length))
	}
	return append(out, body...)
}

func buildMinimalNameTable(familyName string) []byte {
	type rec struct {
		platformID, encodingID, languageID, nameID uint16
		value                                      string
	}
	records := []rec{
		{3, 1, 0x409, 1, familyName},
		{3, 1, 0x409, 4, familyName + " Regular"},
	}

	header := make([]byte, 6)
	binary.BigEndian.PutUint16(header[2:4], uint16(len(records)))

	var recordBytes []byte
	var storage []byte
	for _, r := range records {
		utf16 := encodeUTF16BEForTest(r.value)
		rb := make([]byte, 12)
		binary.BigEndian.PutUint16(rb[0:2], r.platformID)
		binary.BigEndian.PutUint16(rb[2:4], r.encodingID)
		binary.BigEndian.PutUint16(rb[4:6], r.languageID)
		binary.BigEndian.PutUint16(rb[6:8], r.nameID)
		binary.BigEndian.PutUint16(rb[8:10], uint16(len(utf16)))
		binary.BigEndian.PutUint16(rb[10:12], uint16(len(storage)))
		recordBytes = append(recordBytes, rb...)
		storage = append(storage, utf16...)
	}
	binary.BigEndian.PutUint16(header[4:6], uint16(6+len(recordBytes)))

	out := append(header, recordBytes...)
	out = append(out, storage...)
	return out
}

func encodeUTF16BEForTest(s string) []byte {
	var out []byte
	for _, r := range s {
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(r))
		out = append(out, buf...)
	}
	return out
}

func buildMinimalCmapTable() []byte {
	const subtableOffset = 4 + 8

	sub := make([]byte, 32)
	binary.BigEndian.PutUint16(sub[0:2], 4)
	binary.BigEndian.PutUint16(sub[2:4], 32)
	binary.BigEndian.PutUint16(sub[6:8], 4)
	binary.BigEndian.PutUint16(sub[8:10], 4)
	binary.BigEndian.PutUint16(sub[10:12], 1)

	binary.BigEndian.PutUint16(sub[14:16], 0x007F)
	binary.BigEndian.PutUint16(sub[16:18], 0xFFFF)
	binary.BigEndian.PutUint16(sub[20:22], 0x0000)
	binary.BigEndian.PutUint16(sub[22:24], 0xFFFF)
	binary.BigEndian.PutUint16(sub[24:26], 1)
	binary.BigEndian.PutUint16(sub[26:28], 1)

	header := make([]byte, 4)
	binary.BigEndian.PutUint16(header[2:4], 1)

	encRecord := make([]byte, 8)
	binary.BigEndian.PutUint16(encRecord[0:2], 3)
	binary.BigEndian.PutUint16(encRecord[2:4], 1)
	binary.BigEndian.PutUint32(encRecord[4:8], subtableOffset)

	out := append(header, encRecord...)
	out = append(out, sub...)
	return out
}

package fontconfig

// cmapTable is a decoded character-to-glyph mapping capable of answering
// single "does this face have a glyph for rune r" probes. Only formats 4
// and 12 are decoded — together they cover the BMP and full Unicode range
// for essentially every font shipped after the mid-2000s. When the selected
// subtable uses any other format (0, 2, 6, ...), parseCmap returns
// errBadCmap and ParseFaces skips that face.
type cmapTable struct {
	format4  *cmapFormat4
	format12 *cmapFormat12
}

type cmapFormat4 struct {
	segCountX2    uint16
	endCodes      []uint16
	startCodes    []uint16
	idDeltas      []int16
	idRangeOffset []uint16
	idRangeBase   int // absolute offset of idRangeOffset[0] within the table
	data          []byte
}

type cmapFormat12Group struct {
	startCharCode uint32
	endCharCode   uint32
	startGlyphID  uint32
}

type cmapFormat12 struct {
	groups []cmapFormat12Group
}

// selectCmapSubtable picks the best available (platformID, encodingID)
// subtable in this priority order: Windows full-Unicode (3,10), Unicode
// platform full-repertoire encodings (0,4 and above), Windows BMP (3,1),
// then any other Unicode platform record. Other platforms rank last.
func selectCmapSubtable(b []byte) (format uint16, subOffset uint32, ok bool) {
	if len(b) < 4 {
		return 0, 0, false
	}
	numTables, _ := u16At(b, 2)

	type candidate struct {
		platformID, encodingID uint16
		offset                 uint32
	}
	var candidates []candidate
	for i := uint16(0); i < numTables; i++ {
		recOff := 4 + int(i)*8
		if recOff+8 > len(b) {
			break
		}
		platformID, _ := u16At(b, recOff)
		encodingID, _ := u16At(b, recOff+2)
		offset, _ := u32At(b, recOff+4)
		candidates = append(candidates, candidate{platformID, encodingID, offset})
	}

	rank := func(c candidate) int {
		switch {
		case c.platformID == 3 && c.encodingID == 10:
			return 4
		case c.platformID == 0 && c.encodingID >= 4:
			return 3
		case c.platformID == 3 && c.encodingID == 1:
			return 2
		case c.platformID == 0:
			return 1
		default:
			return 0
		}
	}

	best := -1
	bestRank := -1
	for i, c := range candidates {
		r := rank(c)
		if r > bestRank {
			bestRank = r
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	off := candidates[best].offset
	if int(off)+2 > len(b) {
		return 0, 0, false
	}
	fmtVal, _ := u16At(b, int(off))
	return fmtVal, off, true
}

func parseCmap(f *sfntFace) (*cmapTable, error) {
	b, ok := f.table(tagCmap)
	if !ok {
		return nil, errTableNotFound
	}
	format, offset, ok := selectCmapSubtable(b)
	if !ok {
		return nil, errBadCmap
	}
	if int(offset) >= len(b) {
		return nil, errBadCmap
	}
	sub := b[offset:]

	switch format {
	case 4:
		t, err := parseCmapFormat4(sub)
		if err != nil {
			return nil, err
		}
		return &cmapTable{format4: t}, nil
	case 12:
		t, err := parseCmapFormat12(sub)
		if err != nil {
			return nil, err
		}
		return &cmapTable{format12: t}, nil
	default:
		return nil, errBadCmap
	}
}

func parseCmapFormat4(b []byte) (*cmapFormat4, error) {
	if len(b) < 14 {
		return nil, errBadCmap
	}
	segCountX2, _ := u16At(b, 6)
	segCount := int(segCountX2 / 2)
	if segCount == 0 {
		return nil, errBadCmap
	}

	endOff := 14
	if endOff+segCount*2 > len(b) {
		return nil, errBadCmap
	}
	endCodes := make([]uint16, segCount)
	for i := 0; i < segCount; i++ {
		endCodes[i], _ = u16At(b, endOff+i*2)
	}

	startOff := endOff + segCount*2 + 2 // +2 for reservedPad
	if startOff+segCount*2 > len(b) {
		return nil, errBadCmap
	}
	startCodes := make([]uint16, segCount)
	for i := 0; i < segCount; i++ {
		startCodes[i], _ = u16At(b, startOff+i*2)
	}

	deltaOff := startOff + segCount*2
	if deltaOff+segCount*2 > len(b) {
		return nil, errBadCmap
	}
	idDeltas := make([]int16, segCount)
	for i := 0; i < segCount; i++ {
		idDeltas[i], _ = i16At(b, deltaOff+i*2)
	}

	rangeOff := deltaOff + segCount*2
	if rangeOff+segCount*2 > len(b) {
		return nil, errBadCmap
	}
	idRangeOffset := make([]uint16, segCount)
	for i := 0; i < segCount; i++ {
		idRangeOffset[i], _ = u16At(b, rangeOff+i*2)
	}

	return &cmapFormat4{
		segCountX2:    segCountX2,
		endCodes:      endCodes,
		startCodes:    startCodes,
		idDeltas:      idDeltas,
		idRangeOffset: idRangeOffset,
		idRangeBase:   rangeOff,
		data:          b,
	}, nil
}

func parseCmapFormat12(b []byte) (*cmapFormat12, error) {
	if len(b) < 16 {
		return nil, errBadCmap
	}
	numGroups, _ := u32At(b, 12)
	const maxGroups = 1 << 20 // generous cap against corrupt length fields
	if numGroups > maxGroups {
		return nil, errBadCmap
	}
	groupsOff := 16
	if groupsOff+int(numGroups)*12 > len(b) {
		return nil, errBadCmap
	}
	groups := make([]cmapFormat12Group, numGroups)
	for i := uint32(0); i < numGroups; i++ {
		off := groupsOff + int(i)*12
		start, _ := u32At(b, off)
		end, _ := u32At(b, off+4)
		glyph, _ := u32At(b, off+8)
		groups[i] = cmapFormat12Group{startCharCode: start, endCharCode: end, startGlyphID: glyph}
	}
	return &cmapFormat12{groups: groups}, nil
}

// Lookup reports whether r has a nonzero glyph mapping.
func (c *cmapTable) Lookup(r rune) bool {
	if c == nil {
		return false
	}
	if c.format12 != nil {
		return c.format12.lookup(uint32(r))
	}
	if c.format4 != nil && r >= 0 && r <= 0xFFFF {
		return c.format4.lookup(uint16(r))
	}
	return false
}

func (t *cmapFormat12) lookup(r uint32) bool {
	lo, hi := 0, len(t.groups)
	for lo < hi {
		mid := (lo + hi) / 2
		g := t.groups[mid]
		switch {
		case r < g.startCharCode:
			hi = mid
		case r > g.endCharCode:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

func (t *cmapFormat4) lookup(r uint16) bool {
	for i := range t.endCodes {
		if r > t.endCodes[i] {
			continue
		}
		if r < t.startCodes[i] {
			return false
		}
		if t.idRangeOffset[i] == 0 {
			glyphID := uint16(int32(r) + int32(t.idDeltas[i]))
			return glyphID != 0
		}
		glyphOffset := t.idRangeBase + i*2 + int(t.idRangeOffset[i]) + int(r-t.startCodes[i])*2
		g, ok := u16At(t.data, glyphOffset)
		if !ok {
			return false
		}
		return g != 0
	}
	return false
}

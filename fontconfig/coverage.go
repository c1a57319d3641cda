package fontconfig

import "unicode"

// verifyCoverage probes cm for a representative sample of codepoints in
// each candidate UnicodeRange and keeps only the ranges where a majority
// of probes (at least half, rounded up) actually resolve to a glyph. OS/2
// ulUnicodeRange bits are a hint from the font vendor, not a guarantee —
// many subsetted or hand-edited fonts set bits for blocks they don't
// actually cover, so every claimed range is checked against the cmap
// before being trusted.
func verifyCoverage(cm *cmapTable, claimed []UnicodeRange) []UnicodeRange {
	var verified []UnicodeRange
	for _, r := range claimed {
		if probeRange(cm, r) {
			verified = append(verified, r)
		}
	}
	return verified
}

// probeRange samples up to probeSampleSize codepoints spread across the
// range and accepts it if at least half resolve. Ranges narrower than the
// sample size are probed exhaustively.
const probeSampleSize = 16

func probeRange(cm *cmapTable, r UnicodeRange) bool {
	width := r.count()
	if width <= 0 {
		return false
	}

	var samples []rune
	if width <= probeSampleSize {
		for c := r.Start; c <= r.End; c++ {
			samples = append(samples, c)
		}
	} else {
		step := width / probeSampleSize
		if step < 1 {
			step = 1
		}
		for i := 0; i < probeSampleSize; i++ {
			c := r.Start + rune(i*step)
			if c > r.End {
				break
			}
			samples = append(samples, c)
		}
	}
	if len(samples) == 0 {
		return false
	}

	hits := 0
	for _, c := range samples {
		if !unicode.IsGraphic(c) {
			continue
		}
		if cm.Lookup(c) {
			hits++
		}
	}
	needed := (len(samples) + 1) / 2 // ceil(n/2)
	return hits >= needed
}

// os2UnicodeRanges decodes the four ulUnicodeRange bitfields of OS/2 into
// the claimed UnicodeRange set, following the canonical OpenType bit-to-
// block table. Only the blocks actually exercised by the matching engine's
// generic-family and fallback-chain logic are included; bits with no
// corresponding entry here are ignored rather than guessed at.
func os2UnicodeRanges(t os2Table) []UnicodeRange {
	if !t.present {
		return nil
	}
	var out []UnicodeRange
	add := func(bit uint, lo, hi rune) {
		var word uint32
		switch {
		case bit < 32:
			word = t.unicodeRange1
		case bit < 64:
			word = t.unicodeRange2
			bit -= 32
		case bit < 96:
			word = t.unicodeRange3
			bit -= 64
		default:
			word = t.unicodeRange4
			bit -= 96
		}
		if word&(1<<bit) != 0 {
			out = append(out, UnicodeRange{Start: lo, End: hi})
		}
	}

	add(0, 0x0000, 0x007F)   // Basic Latin
	add(1, 0x0080, 0x00FF)   // Latin-1 Supplement
	add(2, 0x0100, 0x017F)   // Latin Extended-A
	add(3, 0x0180, 0x024F)   // Latin Extended-B
	add(4, 0x0250, 0x02AF)   // IPA Extensions
	add(7, 0x0370, 0x03FF)   // Greek and Coptic
	add(9, 0x0400, 0x04FF)   // Cyrillic
	add(10, 0x0530, 0x058F)  // Armenian
	add(11, 0x0590, 0x05FF)  // Hebrew
	add(13, 0x0600, 0x06FF)  // Arabic
	add(15, 0x0900, 0x097F)  // Devanagari
	add(16, 0x0980, 0x09FF)  // Bengali
	add(17, 0x0A00, 0x0A7F)  // Gurmukhi
	add(18, 0x0A80, 0x0AFF)  // Gujarati
	add(22, 0x0E00, 0x0E7F)  // Thai
	add(23, 0x10A0, 0x10FF)  // Georgian
	add(28, 0x1E00, 0x1EFF)  // Latin Extended Additional
	add(29, 0x1F00, 0x1FFF)  // Greek Extended
	add(30, 0x2000, 0x206F)  // General Punctuation
	add(31, 0x2070, 0x209F)  // Superscripts and Subscripts
	add(32, 0x20A0, 0x20CF)  // Currency Symbols
	add(33, 0x20D0, 0x20FF)  // Combining Diacritical Marks for Symbols
	add(34, 0x2100, 0x214F)  // Letterlike Symbols
	add(35, 0x2150, 0x218F)  // Number Forms
	add(36, 0x2190, 0x21FF)  // Arrows
	add(37, 0x2200, 0x22FF)  // Mathematical Operators
	add(38, 0x2300, 0x23FF)  // Miscellaneous Technical
	add(41, 0x2500, 0x257F)  // Box Drawing
	add(42, 0x2580, 0x259F)  // Block Elements
	add(43, 0x25A0, 0x25FF)  // Geometric Shapes
	add(44, 0x2600, 0x26FF)  // Miscellaneous Symbols
	add(45, 0x2700, 0x27BF)  // Dingbats
	add(48, 0x3000, 0x303F)  // CJK Symbols and Punctuation
	add(49, 0x3040, 0x309F)  // Hiragana
	add(50, 0x30A0, 0x30FF)  // Katakana
	add(51, 0x3100, 0x312F)  // Bopomofo
	add(54, 0x3200, 0x32FF)  // Enclosed CJK Letters and Months
	add(59, 0x4E00, 0x9FFF)  // CJK Unified Ideographs
	add(60, 0xAC00, 0xD7A3)  // Hangul Syllables
	add(62, 0xE000, 0xF8FF)  // Private Use Area
	add(67, 0xFB00, 0xFB4F)  // Alphabetic Presentation Forms
	add(68, 0xFB50, 0xFDFF)  // Arabic Presentation Forms-A
	add(70, 0xFE20, 0xFE2F)  // Combining Half Marks
	add(73, 0xFF00, 0xFFEF)  // Halfwidth and Fullwidth Forms

	return out
}

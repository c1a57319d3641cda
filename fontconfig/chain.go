package fontconfig

// CssFallbackGroup holds the matches found for one entry of a requested
// family stack. A group is appended for every entry the caller asked for,
// even when Fonts ends up empty, so a resolved chain's CssFallbacks always
// mirrors the requested stack one-for-one.
type CssFallbackGroup struct {
	CssName string
	Fonts   []FontMatch
}

// unicodeFallbackSource is the css_source reported by ResolveChar for a
// character that only resolved via UnicodeFallbacks rather than a named
// group.
const unicodeFallbackSource = "(unicode-fallback)"

// FontFallbackChain is the resolved candidate set for a single style
// request: one CssFallbackGroup per entry of the requested family stack, in
// order, plus a unicode-only fallback tail and the stack it was resolved
// from. Chains are cached by (family stack, style) and invalidated
// wholesale on any registry insert: coarse invalidation, never partial.
type FontFallbackChain struct {
	CssFallbacks     []CssFallbackGroup
	UnicodeFallbacks []FontMatch
	OriginalStack    []string
}

// faceLookup is the minimal interface chain resolution needs from
// FcFontCache.
type faceLookup interface {
	// queryGenericStyle runs a name-less, style-only query requiring the
	// given monospace polarity, for a generic (serif/sans-serif/monospace/
	// cursive/fantasy/system-ui) stack entry.
	queryGenericStyle(monospace PatternMatch, style FcPattern) []FontMatch
	// fuzzyQueryByName runs the token-intersection fuzzy name search
	// (progressive set intersection, ranked by similarity then style) for a
	// specific (non-generic) stack entry.
	fuzzyQueryByName(name string, style FcPattern) []FontMatch
}

// ResolveChain builds a FontFallbackChain for a requested family stack and
// style, using the host's own OS.
func ResolveChain(lookup faceLookup, familyStack []string, style FcPattern) FontFallbackChain {
	return ResolveChainForOS(lookup, Current(), familyStack, style)
}

// ResolveChainForOS is ResolveChain but resolves as if running under an
// explicitly chosen OS rather than the host's own. os only participates in
// the cache key one layer up (FcFontCache.ResolveChainForOS) and in the
// registry's request protocol (ExpandFamilyStackForOS): the per-family
// dispatch below is a style-only query whose monospace polarity doesn't
// vary by platform.
func ResolveChainForOS(lookup faceLookup, os OperatingSystem, familyStack []string, style FcPattern) FontFallbackChain {
	groups := make([]CssFallbackGroup, 0, len(familyStack))

	for _, fam := range familyStack {
		var matches []FontMatch
		if g, ok := ParseGenericFamily(toLower(fam)); ok {
			monospace := False
			if g == FamilyMonospace {
				monospace = True
			}
			matches = lookup.queryGenericStyle(monospace, style)
		} else {
			matches = lookup.fuzzyQueryByName(fam, style)
		}
		groups = append(groups, CssFallbackGroup{CssName: fam, Fonts: matches})
	}

	return FontFallbackChain{
		CssFallbacks:  groups,
		OriginalStack: append([]string(nil), familyStack...),
	}
}

// ResolveChar scans CssFallbacks in order, then UnicodeFallbacks, and
// returns the first face whose verified ranges cover r together with the
// CssName of the group it was found in, or unicodeFallbackSource if it was
// only covered by the unicode tail. Returns false if nothing in the chain
// covers r; a face with no verified ranges is never used as a catch-all.
func (c FontFallbackChain) ResolveChar(r rune) (FontId, string, bool) {
	for _, group := range c.CssFallbacks {
		for _, f := range group.Fonts {
			if f.coversRune(r) {
				return f.Id, group.CssName, true
			}
		}
	}
	for _, f := range c.UnicodeFallbacks {
		if f.coversRune(r) {
			return f.Id, unicodeFallbackSource, true
		}
	}
	return FontId{}, "", false
}

// TextRun is one byte-indexed span of input text assigned to a single
// resolved face (or the zero FontId, with Resolved=false, for a span no
// face in the chain covers — callers render it with the notdef glyph).
// CssSource names the group (or unicodeFallbackSource) the run's face was
// found in; it is empty when Resolved is false.
type TextRun struct {
	Text      string
	Start     int // byte offset, inclusive
	End       int // byte offset, exclusive
	Face      FontId
	CssSource string
	Resolved  bool
}

// QueryForText segments text into maximal runs sharing the same resolved
// face, preserving byte order. Consecutive runes that resolve to the same
// face via the same css source (or that equally fail to resolve) are
// coalesced into a single run.
func (c FontFallbackChain) QueryForText(text string) []TextRun {
	var runs []TextRun
	var cur *TextRun
	for i, r := range text {
		face, source, ok := c.ResolveChar(r)
		if cur != nil && cur.Resolved == ok && cur.Face == face && cur.CssSource == source {
			cur.End = i + runeLen(r)
			continue
		}
		if cur != nil {
			cur.Text = text[cur.Start:cur.End]
			runs = append(runs, *cur)
		}
		cur = &TextRun{Start: i, End: i + runeLen(r), Face: face, CssSource: source, Resolved: ok}
	}
	if cur != nil {
		cur.Text = text[cur.Start:cur.End]
		runs = append(runs, *cur)
	}
	return runs
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

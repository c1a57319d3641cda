package fontconfig

import "fmt"

// UnicodeRange is a closed codepoint interval [Start, End].
type UnicodeRange struct {
	Start rune
	End   rune
}

// Contains reports whether r lies within the range, inclusive.
func (u UnicodeRange) Contains(r rune) bool {
	return r >= u.Start && r <= u.End
}

// Overlaps reports whether u and other share at least one codepoint.
func (u UnicodeRange) Overlaps(other UnicodeRange) bool {
	return u.Start <= other.End && other.Start <= u.End
}

// IsSubsetOf reports whether every codepoint in u is also in other.
func (u UnicodeRange) IsSubsetOf(other UnicodeRange) bool {
	return u.Start >= other.Start && u.End <= other.End
}

// count returns the number of codepoints in the range.
func (u UnicodeRange) count() int {
	if u.End < u.Start {
		return 0
	}
	return int(u.End-u.Start) + 1
}

// PatternMatch is a ternary value used for the boolean style axes
// (italic/oblique/bold/monospace/condensed). DontCare matches anything;
// True and False require exact equality against the candidate.
type PatternMatch uint8

const (
	DontCare PatternMatch = iota
	True
	False
)

func (p PatternMatch) String() string {
	switch p {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "dontcare"
	}
}

// matches reports whether a concrete face value (have) satisfies a query
// axis (want) under ternary semantics.
func (want PatternMatch) matches(have bool) bool {
	switch want {
	case True:
		return have
	case False:
		return !have
	default:
		return true
	}
}

// FcWeight is one of the nine CSS weight stops.
type FcWeight int

const (
	WeightThin       FcWeight = 100
	WeightExtraLight FcWeight = 200
	WeightLight      FcWeight = 300
	WeightNormal     FcWeight = 400
	WeightMedium     FcWeight = 500
	WeightSemiBold   FcWeight = 600
	WeightBold       FcWeight = 700
	WeightExtraBold  FcWeight = 800
	WeightBlack      FcWeight = 900
)

// fcWeightSteps lists the nine stops in ascending order, used by the CSS
// font-weight fallback algorithm in FindBestMatch.
var fcWeightSteps = []FcWeight{
	WeightThin, WeightExtraLight, WeightLight, WeightNormal, WeightMedium,
	WeightSemiBold, WeightBold, WeightExtraBold, WeightBlack,
}

// FindBestMatch implements the CSS font-weight fallback algorithm: if w is
// available, it matches exactly. Otherwise, at the two special stops (400
// and 500) the sibling stop (500 or 400) is tried before anything else;
// weights below Normal search lighter stops first then heavier, weights
// above Medium search heavier stops first then lighter, and the two special
// stops fall through to "search lighter first" after their sibling check.
func (w FcWeight) FindBestMatch(available []FcWeight) (FcWeight, bool) {
	if len(available) == 0 {
		return 0, false
	}
	have := make(map[FcWeight]bool, len(available))
	for _, a := range available {
		have[a] = true
	}
	if have[w] {
		return w, true
	}

	if w == WeightNormal && have[WeightMedium] {
		return WeightMedium, true
	}
	if w == WeightMedium && have[WeightNormal] {
		return WeightNormal, true
	}

	switch {
	case w > WeightMedium:
		if best, ok := nearestAbove(w, available); ok {
			return best, true
		}
		return nearestBelow(w, available)
	default: // w < WeightNormal, or w is 400/500 with no sibling present
		if best, ok := nearestBelow(w, available); ok {
			return best, true
		}
		return nearestAbove(w, available)
	}
}

// nearestBelow returns the largest value in available that is strictly less
// than w.
func nearestBelow(w FcWeight, available []FcWeight) (FcWeight, bool) {
	best := FcWeight(0)
	found := false
	for _, a := range available {
		if a < w && (!found || a > best) {
			best = a
			found = true
		}
	}
	return best, found
}

// nearestAbove returns the smallest value in available that is strictly
// greater than w.
func nearestAbove(w FcWeight, available []FcWeight) (FcWeight, bool) {
	best := FcWeight(0)
	found := false
	for _, a := range available {
		if a > w && (!found || a < best) {
			best = a
			found = true
		}
	}
	return best, found
}

// weightFromOS2Class maps an OS/2 usWeightClass value (1-1000) to the
// nearest CSS weight stop.
func weightFromOS2Class(class uint16) FcWeight {
	best := fcWeightSteps[0]
	bestDist := -1
	for _, w := range fcWeightSteps {
		d := int(w) - int(class)
		if d < 0 {
			d = -d
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = w
		}
	}
	return best
}

// FcStretch is one of the nine CSS width stops.
type FcStretch int

const (
	StretchUltraCondensed FcStretch = 1
	StretchExtraCondensed FcStretch = 2
	StretchCondensed      FcStretch = 3
	StretchSemiCondensed  FcStretch = 4
	StretchNormal         FcStretch = 5
	StretchSemiExpanded   FcStretch = 6
	StretchExpanded       FcStretch = 7
	StretchExtraExpanded  FcStretch = 8
	StretchUltraExpanded  FcStretch = 9
)

// FindBestMatch implements the CSS font-stretch fallback algorithm: an
// exact match wins; otherwise a request at or narrower than Normal prefers
// the nearest narrower stop, falling back to the nearest wider one, and a
// request wider than Normal prefers the nearest wider stop, falling back to
// the nearest narrower one.
func (s FcStretch) FindBestMatch(available []FcStretch) (FcStretch, bool) {
	if len(available) == 0 {
		return 0, false
	}
	for _, a := range available {
		if a == s {
			return s, true
		}
	}

	narrower := func() (FcStretch, bool) {
		best := FcStretch(0)
		found := false
		for _, a := range available {
			if a < s && (!found || a > best) {
				best = a
				found = true
			}
		}
		return best, found
	}
	wider := func() (FcStretch, bool) {
		best := FcStretch(0)
		found := false
		for _, a := range available {
			if a > s && (!found || a < best) {
				best = a
				found = true
			}
		}
		return best, found
	}

	if s <= StretchNormal {
		if best, ok := narrower(); ok {
			return best, true
		}
		return wider()
	}
	if best, ok := wider(); ok {
		return best, true
	}
	return narrower()
}

// stretchFromOS2Class maps an OS/2 usWidthClass value (1-9) to FcStretch,
// clamping out-of-range values.
func stretchFromOS2Class(class uint16) FcStretch {
	if class < 1 {
		return StretchUltraCondensed
	}
	if class > 9 {
		return StretchUltraExpanded
	}
	return FcStretch(class)
}

// FcPattern is the queryable face descriptor: the hard-gate/soft-score
// fields used by the matching engine, plus informational metadata carried
// through from the name table for diagnostics and embedding scenarios.
type FcPattern struct {
	Name   string
	Family string

	Italic    PatternMatch
	Oblique   PatternMatch
	Bold      PatternMatch
	Monospace PatternMatch
	Condensed PatternMatch

	Weight  FcWeight
	Stretch FcStretch

	// UnicodeRanges holds only verified ranges: see Coverage Verifier.
	UnicodeRanges []UnicodeRange

	// Extended, informational metadata from the name table and OS/2/head.
	Copyright        string
	Designer         string
	License          string
	Version          string
	PostscriptName   string
	PreferredFamily  string
	PreferredSubfamily string
}

// DefaultPattern returns a pattern with all ternary axes at DontCare and
// Normal weight/stretch — matches anything.
func DefaultPattern() FcPattern {
	return FcPattern{
		Italic:    DontCare,
		Oblique:   DontCare,
		Bold:      DontCare,
		Monospace: DontCare,
		Condensed: DontCare,
		Weight:    WeightNormal,
		Stretch:   StretchNormal,
	}
}

// DisplayName returns Name if set, else Family, else "<unknown>", for
// diagnostics and log lines.
func (p FcPattern) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Family != "" {
		return p.Family
	}
	return "<unknown>"
}

func (p FcPattern) String() string {
	return fmt.Sprintf("FcPattern{%s weight=%d stretch=%d italic=%s bold=%s mono=%s}",
		p.DisplayName(), p.Weight, p.Stretch, p.Italic, p.Bold, p.Monospace)
}

// FontMatch is a query result: a face id plus the verified ranges it
// claims, enough for a resolver to decide codepoint coverage without a
// second index lookup.
type FontMatch struct {
	Id            FontId
	UnicodeRanges []UnicodeRange
}

// coversRune reports whether any of m's verified ranges contains r. A
// FontMatch with no ranges never matches anything — an empty-coverage face
// is never used as a silent catch-all.
func (m FontMatch) coversRune(r rune) bool {
	for _, ur := range m.UnicodeRanges {
		if ur.Contains(r) {
			return true
		}
	}
	return false
}

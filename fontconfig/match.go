package fontconfig

import (
	"sort"
	"strings"
)

// matchesFilter applies the hard-gate predicate: candidate
// must satisfy every axis the query actually constrains. Every rejection
// (and the final acceptance) appends a MatchReason to trace.
func matchesFilter(candidate FcPattern, id FontId, query FcPattern, trace *[]MatchReason) bool {
	if query.Name != "" && !strings.Contains(toLower(candidate.Name), toLower(query.Name)) {
		appendTrace(trace, MatchReason{Kind: ReasonNameMismatch, Id: id, Requested: query.Name, Found: candidate.Name})
		return false
	}
	if query.Family != "" && !strings.Contains(toLower(candidate.Family), toLower(query.Family)) {
		appendTrace(trace, MatchReason{Kind: ReasonFamilyMismatch, Id: id, Requested: query.Family, Found: candidate.Family})
		return false
	}

	styleAxes := []struct {
		name string
		want PatternMatch
		have bool
	}{
		{"italic", query.Italic, candidate.Italic == True},
		{"oblique", query.Oblique, candidate.Oblique == True},
		{"bold", query.Bold, candidate.Bold == True},
		{"monospace", query.Monospace, candidate.Monospace == True},
		{"condensed", query.Condensed, candidate.Condensed == True},
	}
	for _, axis := range styleAxes {
		if !axis.want.matches(axis.have) {
			appendTrace(trace, MatchReason{Kind: ReasonStyleMismatch, Id: id, Property: axis.name})
			return false
		}
	}

	if query.Weight != WeightNormal && query.Weight != 0 && candidate.Weight != query.Weight {
		appendTrace(trace, MatchReason{Kind: ReasonWeightMismatch, Id: id, RequestedWeight: query.Weight, FoundWeight: candidate.Weight})
		return false
	}
	if query.Stretch != StretchNormal && query.Stretch != 0 && candidate.Stretch != query.Stretch {
		appendTrace(trace, MatchReason{Kind: ReasonStretchMismatch, Id: id, RequestedStretch: query.Stretch, FoundStretch: candidate.Stretch})
		return false
	}

	if len(query.UnicodeRanges) > 0 {
		if !rangesOverlapAny(query.UnicodeRanges, candidate.UnicodeRanges) {
			appendTrace(trace, MatchReason{Kind: ReasonUnicodeRangeMismatch, Id: id, Ranges: candidate.UnicodeRanges})
			return false
		}
	}

	appendTrace(trace, MatchReason{Kind: ReasonSuccess, Id: id})
	return true
}

func appendTrace(trace *[]MatchReason, r MatchReason) {
	if trace != nil {
		*trace = append(*trace, r)
	}
}

func rangesOverlapAny(a, b []UnicodeRange) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.Overlaps(rb) {
				return true
			}
		}
	}
	return false
}

// styleScore computes the soft-ranker penalty: lower is
// better.
func styleScore(query FcPattern, candidate FcPattern) int {
	score := 0

	boldRequested := query.Bold == True
	boldRefused := query.Bold == False
	candidateIsBold := candidate.Bold == True
	if boldRequested && candidateIsBold {
		// zero penalty
	} else if boldRefused && !candidateIsBold {
		// zero penalty
	} else {
		d := int(query.Weight) - int(candidate.Weight)
		if d < 0 {
			d = -d
		}
		score += d
	}

	condensedRequested := query.Condensed == True
	condensedRefused := query.Condensed == False
	candidateIsCondensed := candidate.Condensed == True
	if condensedRequested && candidateIsCondensed {
		// zero penalty
	} else if condensedRefused && !candidateIsCondensed {
		// zero penalty
	} else {
		d := int(query.Stretch) - int(candidate.Stretch)
		if d < 0 {
			d = -d
		}
		score += 100 * d
	}

	type axisPenalty struct {
		want       PatternMatch
		have       PatternMatch
		mismatch   int
		dontCare   int
		exactBonus int
	}
	axes := []axisPenalty{
		{query.Italic, candidate.Italic, 300, 150, 20},
		{query.Oblique, candidate.Oblique, 200, 100, 20},
		{query.Bold, candidate.Bold, 300, 150, 20},
		{query.Monospace, candidate.Monospace, 100, 50, 20},
		{query.Condensed, candidate.Condensed, 100, 50, 20},
	}
	for _, a := range axes {
		switch {
		case a.want == DontCare:
			// no constraint requested, no penalty either way
		case a.have == DontCare:
			score += a.dontCare
		case a.want == True && a.have == True:
			score -= a.exactBonus
		case a.want == a.have:
			// matching False/False: fine
		default:
			score += a.mismatch
		}
	}

	return score
}

// calculateUnicodeCompatibility returns the size of the intersection
// between the requested ranges and the candidate's verified ranges.
func calculateUnicodeCompatibility(requested, candidate []UnicodeRange) int {
	total := 0
	for _, r := range requested {
		for _, c := range candidate {
			if lo, hi, ok := intersect(r, c); ok {
				total += int(hi-lo) + 1
			}
		}
	}
	return total
}

func intersect(a, b UnicodeRange) (rune, rune, bool) {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// calculateUnicodeCoverage returns the total codepoint count across ranges
// (used when the query specifies no ranges at all).
func calculateUnicodeCoverage(ranges []UnicodeRange) int {
	total := 0
	for _, r := range ranges {
		total += r.count()
	}
	return total
}

// scoredCandidate is the common intermediate used by Query and the fuzzy
// matcher before final sorting.
type scoredCandidate struct {
	id         FontId
	compat     int
	score      int
	similarity int // fuzzy-query only
	pattern    FcPattern
}

// queryAll scans every face in patterns, applies the filter, and returns
// the full list of passing candidates with their scores, sorted by Unicode
// compatibility (descending), then style score (ascending).
func queryAll(list []struct {
	Pattern FcPattern
	Id      FontId
}, query FcPattern, trace *[]MatchReason) []scoredCandidate {
	out := make([]scoredCandidate, 0, len(list))
	for _, entry := range list {
		if !matchesFilter(entry.Pattern, entry.Id, query, trace) {
			continue
		}
		var compat int
		if len(query.UnicodeRanges) == 0 {
			compat = calculateUnicodeCoverage(entry.Pattern.UnicodeRanges)
		} else {
			compat = calculateUnicodeCompatibility(query.UnicodeRanges, entry.Pattern.UnicodeRanges)
		}
		out = append(out, scoredCandidate{
			id:      entry.Id,
			compat:  compat,
			score:   styleScore(query, entry.Pattern),
			pattern: entry.Pattern,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].compat != out[j].compat {
			return out[i].compat > out[j].compat
		}
		return out[i].score < out[j].score
	})
	return out
}

// fuzzyQueryByName implements progressive token-set
// intersection, then rank by token-similarity desc, style score asc,
// truncated to 5.
func fuzzyQueryByName(idx *fontIndex, requestedName string, style FcPattern) []scoredCandidate {
	tokens := ExtractTokens(requestedName)
	if len(tokens) == 0 {
		return nil
	}

	firstSet := idx.candidatesForToken(tokens[0])
	if len(firstSet) == 0 {
		return nil
	}
	candidateIds := make(map[FontId]struct{}, len(firstSet))
	for id := range firstSet {
		candidateIds[id] = struct{}{}
	}

	for _, tok := range tokens[1:] {
		next := idx.candidatesForToken(tok)
		if len(next) == 0 {
			break
		}
		intersection := make(map[FontId]struct{})
		for id := range candidateIds {
			if _, ok := next[id]; ok {
				intersection[id] = struct{}{}
			}
		}
		if len(intersection) == 0 {
			break // keep the previous, broader set
		}
		candidateIds = intersection
	}

	out := make([]scoredCandidate, 0, len(candidateIds))
	for id := range candidateIds {
		pattern, ok := idx.metadata(id)
		if !ok {
			continue
		}
		faceTokens := idx.tokensFor(id)
		if len(faceTokens) == 0 {
			continue
		}

		matched := 0
		for _, reqTok := range tokens {
			for _, ft := range faceTokens {
				if strings.Contains(ft, reqTok) {
					matched++
					break
				}
			}
		}
		if matched == 0 {
			continue
		}

		similarity := matched * 100 / len(tokens)
		out = append(out, scoredCandidate{
			id:         id,
			similarity: similarity,
			score:      styleScore(style, pattern),
			pattern:    pattern,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].similarity != out[j].similarity {
			return out[i].similarity > out[j].similarity
		}
		return out[i].score < out[j].score
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func toFontMatches(cands []scoredCandidate) []FontMatch {
	out := make([]FontMatch, 0, len(cands))
	for _, c := range cands {
		out = append(out, FontMatch{Id: c.id, UnicodeRanges: c.pattern.UnicodeRanges})
	}
	return out
}

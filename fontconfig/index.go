package fontconfig

// fontIndex is the in-memory store backing FcFontCache (which
// registry.Registry also writes into as its workers parse files). It keeps
// an insertion-order list of ids (order) for List(), three maps keyed by
// FontId (patterns, sources, tokens) for O(1) lookup, and an inverted
// token index.
type fontIndex struct {
	order    []FontId            // insertion order, for List()
	patterns map[FontId]FcPattern
	sources  map[FontId]FontSource
	tokens   map[FontId][]string
	inverted map[string]map[FontId]struct{}
}

func newFontIndex() *fontIndex {
	return &fontIndex{
		patterns: make(map[FontId]FcPattern),
		sources:  make(map[FontId]FontSource),
		tokens:   make(map[FontId][]string),
		inverted: make(map[string]map[FontId]struct{}),
	}
}

// insert adds a face. Inserts are append-only: calling insert twice with an
// id already present overwrites the pattern/source but does not duplicate
// the entry in order or double-count tokens beyond set semantics (the
// inverted index is a set, so re-insertion is idempotent).
func (idx *fontIndex) insert(id FontId, pattern FcPattern, src FontSource) {
	if _, exists := idx.patterns[id]; !exists {
		idx.order = append(idx.order, id)
	}
	idx.patterns[id] = pattern
	idx.sources[id] = src

	toks := indexTokensFor(pattern)
	idx.tokens[id] = toks
	for _, tok := range toks {
		set, ok := idx.inverted[tok]
		if !ok {
			set = make(map[FontId]struct{})
			idx.inverted[tok] = set
		}
		set[id] = struct{}{}
	}
}

// indexTokensFor computes the deduplicated token set for a pattern's Name
// and Family.
func indexTokensFor(pattern FcPattern) []string {
	seen := make(map[string]struct{})
	var toks []string
	add := func(name string) {
		if name == "" {
			return
		}
		for _, t := range ExtractTokens(name) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			toks = append(toks, t)
		}
	}
	add(pattern.Name)
	add(pattern.Family)
	return toks
}

func (idx *fontIndex) metadata(id FontId) (FcPattern, bool) {
	p, ok := idx.patterns[id]
	return p, ok
}

func (idx *fontIndex) source(id FontId) (FontSource, bool) {
	s, ok := idx.sources[id]
	return s, ok
}

func (idx *fontIndex) tokensFor(id FontId) []string {
	return idx.tokens[id]
}

// list returns every (pattern, id) pair in insertion order.
func (idx *fontIndex) list() []struct {
	Pattern FcPattern
	Id      FontId
} {
	out := make([]struct {
		Pattern FcPattern
		Id      FontId
	}, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, struct {
			Pattern FcPattern
			Id      FontId
		}{idx.patterns[id], id})
	}
	return out
}

// candidatesForToken returns the set of ids sharing the given lowercase
// token, or nil if no face has it.
func (idx *fontIndex) candidatesForToken(token string) map[FontId]struct{} {
	return idx.inverted[token]
}

// clone makes a deep-enough copy for an immutable snapshot: map headers are
// new, but FcPattern/FontSource values are already copy-safe (no pointers
// or slices mutated post-construction, aside from UnicodeRanges which is
// never mutated in place after parsing).
func (idx *fontIndex) clone() *fontIndex {
	out := newFontIndex()
	out.order = append(out.order, idx.order...)
	for id, p := range idx.patterns {
		out.patterns[id] = p
	}
	for id, s := range idx.sources {
		out.sources[id] = s
	}
	for id, t := range idx.tokens {
		cp := make([]string, len(t))
		copy(cp, t)
		out.tokens[id] = cp
	}
	for tok, set := range idx.inverted {
		cp := make(map[FontId]struct{}, len(set))
		for id := range set {
			cp[id] = struct{}{}
		}
		out.inverted[tok] = cp
	}
	return out
}

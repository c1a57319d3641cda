package fontconfig

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// foldCase is the Unicode-aware case folder used to lowercase tokens and
// query names. It is correct for non-ASCII family names (e.g. Turkish,
// Greek) where a naive strings.ToLower would mis-fold some letters.
var foldCase = cases.Fold()

func toLower(s string) string {
	return foldCase.String(s)
}

// ExtractTokens splits a font name into lowercase tokens on whitespace,
// '-', '_', and CamelCase boundaries (a lowercase→uppercase transition).
//
// Examples:
//
//	"NotoSansJP"      -> [noto, sans, jp]
//	"Noto Sans CJK JP" -> [noto, sans, cjk, jp]
func ExtractTokens(name string) []string {
	// First split on explicit delimiters.
	var words []string
	var cur strings.Builder
	runes := []rune(name)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			// CamelCase boundary: end the previous word here.
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		tokens = append(tokens, toLower(w))
	}
	return tokens
}

// HasAlphanumeric reports whether name contains at least one letter or
// digit, the condition under which ExtractTokens is guaranteed non-empty.
func HasAlphanumeric(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// NormalizeFamilyName strips everything but letters/digits and folds case,
// for family-name equality comparisons used by the request protocol.
func NormalizeFamilyName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return toLower(b.String())
}

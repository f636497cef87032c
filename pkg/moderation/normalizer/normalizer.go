// Package normalizer canonicalizes raw text into the two representations
// consumed by the detection pipeline.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalized holds the canonical views of an input text. Normalized is
// lowercased, diacritic-free and leetspeak-folded; Compact additionally drops
// every non-alphanumeric rune, which defeats character-insertion obfuscation
// such as "f.u.c.k".
type Normalized struct {
	Normalized string
	Compact    string
}

var leetMap = map[rune]rune{
	'@': 'a',
	'4': 'a',
	'3': 'e',
	'1': 'i',
	'!': 'i',
	'0': 'o',
	'$': 's',
	'5': 's',
	'7': 't',
	'8': 'b',
}

var zeroWidth = map[rune]struct{}{
	'\u200b': {}, // zero width space
	'\u200c': {}, // zero width non-joiner
	'\u200d': {}, // zero width joiner
	'\u2060': {}, // word joiner
	'\ufeff': {}, // byte order mark
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize is total: any input yields a (possibly empty) pair and never fails.
func Normalize(text string) Normalized {
	if text == "" {
		return Normalized{}
	}

	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}

	var normalized strings.Builder
	normalized.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if _, skip := zeroWidth[r]; skip {
			continue
		}
		if sub, ok := leetMap[r]; ok {
			normalized.WriteRune(sub)
			continue
		}
		normalized.WriteRune(r)
	}
	n := normalized.String()

	var compact strings.Builder
	compact.Grow(len(n))
	for _, r := range n {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			compact.WriteRune(r)
		}
	}

	return Normalized{Normalized: n, Compact: compact.String()}
}

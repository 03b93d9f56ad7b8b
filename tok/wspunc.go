/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tok

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// punctuation is the ASCII punctuation set with the hyphen removed. Hyphens
// survive stripping so that a free standing "-" stays a token of its own.
const punctuation = "!\"#$%&'()*+,./:;<=>?@[\\]^_`{|}~"

var (
	// hyphenated matches a hyphen between two word characters. A word
	// character is a letter, a digit or an underscore in any script.
	hyphenated = regexp.MustCompile(`([\p{L}\p{N}_])-([\p{L}\p{N}_])`)

	isPunct [utf8.RuneSelf]bool
)

func init() {
	for i := 0; i < len(punctuation); i++ {
		isPunct[punctuation[i]] = true
	}
}

// WsPunc lowercases text, splits hyphenated words, splits on whitespace and
// strips punctuation (except hyphens) from every piece.
//
// Matches are rewritten in a single left to right pass, so "a-b-c" becomes
// ["a", "b-c"]. A piece made only of punctuation yields an empty token: "!!!"
// gives [""], while "" gives no tokens at all.
func WsPunc(text string) []string {
	s := normalize(text)
	spans := fieldSpans(s)
	tokens := make([]string, 0, len(spans))
	for _, sp := range spans {
		tokens = append(tokens, stripPunct(s[sp.start:sp.end]))
	}
	return tokens
}

// normalize lowercases text and replaces the hyphen of every hyphenated pair
// with a space. The hyphen rewrite does not change byte offsets.
//
// Lowercasing uses the full Unicode mappings of the root locale, so "İ"
// becomes "i̇" and a word final "Σ" becomes "ς". A Caser is stateful and
// cannot be shared between goroutines.
func normalize(text string) string {
	lower := cases.Lower(language.Und).String(text)
	return hyphenated.ReplaceAllString(lower, "${1} ${2}")
}

type span struct {
	start, end int
}

// isSpace reports whitespace the way str.split does. unicode.IsSpace misses the
// ASCII file, group, record and unit separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

// fieldSpans returns the byte offsets of the whitespace separated fields of s.
func fieldSpans(s string) []span {
	var spans []span
	start := -1
	for i, r := range s {
		if isSpace(r) {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && isPunct[r] {
			return -1
		}
		return r
	}, s)
}

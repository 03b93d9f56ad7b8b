/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tok

import (
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/x"
)

const (
	// WsPuncName is the name under which WsPunc is registered with bleve, both
	// as a tokenizer and as an analyzer without token filters.
	WsPuncName = "wspunc"

	termAnalyzerName = "term"
)

var bleveCache = registry.NewCache()

// wsPuncTokenizer exposes WsPunc as a bleve tokenizer. Start and End are byte
// offsets into the lowercased input, Position counts tokens from 1.
type wsPuncTokenizer struct{}

func (wsPuncTokenizer) Tokenize(input []byte) analysis.TokenStream {
	s := normalize(string(input))
	spans := fieldSpans(s)
	stream := make(analysis.TokenStream, 0, len(spans))
	for i, sp := range spans {
		stream = append(stream, &analysis.Token{
			Start:    sp.start,
			End:      sp.end,
			Term:     []byte(stripPunct(s[sp.start:sp.end])),
			Position: i + 1,
			Type:     analysis.AlphaNumeric,
		})
	}
	return stream
}

func wsPuncTokenizerConstructor(config map[string]interface{},
	cache *registry.Cache) (analysis.Tokenizer, error) {
	return wsPuncTokenizer{}, nil
}

func registerBleveTokenizers() {
	registry.RegisterTokenizer(WsPuncName, wsPuncTokenizerConstructor)

	// wspunc analyzer - WsPunc with no further filtering.
	_, err := bleveCache.DefineAnalyzer(WsPuncName,
		map[string]interface{}{
			"type":      custom.Name,
			"tokenizer": WsPuncName,
		})
	x.Check(err)

	// term analyzer - splits on word boundaries and lowercases tokens.
	_, err = bleveCache.DefineAnalyzer(termAnalyzerName,
		map[string]interface{}{
			"type":      custom.Name,
			"tokenizer": unicode.Name,
			"token_filters": []string{
				lowercase.Name,
			},
		})
	x.Check(err)
}

// Analyzer returns the named analyzer from the tokenizer cache, so that bleve
// index mappings can share it.
func Analyzer(name string) (analysis.Analyzer, error) {
	a, err := bleveCache.AnalyzerNamed(name)
	return a, errors.Wrapf(err, "while looking up analyzer %q", name)
}

func analyze(name, s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	analyzer, err := Analyzer(name)
	if err != nil {
		return nil, err
	}
	tokens := analyzer.Analyze([]byte(s))
	terms := make([]string, 0, len(tokens))
	for i := range tokens {
		terms = append(terms, string(tokens[i].Term))
	}
	return terms, nil
}

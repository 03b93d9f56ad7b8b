/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tok

import (
	"testing"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/stretchr/testify/require"
)

func TestWsPuncBleveTokenizer(t *testing.T) {
	stream := wsPuncTokenizer{}.Tokenize([]byte("Hello - World!"))
	require.Equal(t, analysis.TokenStream{
		{Start: 0, End: 5, Term: []byte("hello"), Position: 1, Type: analysis.AlphaNumeric},
		{Start: 6, End: 7, Term: []byte("-"), Position: 2, Type: analysis.AlphaNumeric},
		{Start: 8, End: 14, Term: []byte("world"), Position: 3, Type: analysis.AlphaNumeric},
	}, stream)
}

func TestWsPuncAnalyzer(t *testing.T) {
	analyzer, err := Analyzer(WsPuncName)
	require.NoError(t, err)

	for _, in := range []string{"", "!!!", "hello-world-programming", "Search is my life"} {
		var terms []string
		for _, token := range analyzer.Analyze([]byte(in)) {
			terms = append(terms, string(token.Term))
		}
		expected := WsPunc(in)
		if len(expected) == 0 {
			require.Empty(t, terms)
			continue
		}
		require.Equal(t, expected, terms, "input %q", in)
	}
}

func TestAnalyzerMissing(t *testing.T) {
	_, err := Analyzer("missing")
	require.Error(t, err)
}

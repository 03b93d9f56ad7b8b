/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/searcharray/posting"
	"github.com/hypermodeinc/searcharray/tok"
)

var tryoutDocs = []string{"Life is good", "Search is my life"}

func indexDocs(t *testing.T, docs []string, opts ...Option) *SearchArray {
	sa, err := Index(docs, opts...)
	require.NoError(t, err)
	t.Cleanup(sa.Close)
	return sa
}

func TestIndexTermDict(t *testing.T) {
	sa := indexDocs(t, tryoutDocs)
	require.Equal(t, 2, sa.Shape())
	require.Equal(t, []string{"life", "is", "good", "search", "my"}, sa.TermDict().Terms())

	id, ok := sa.TermDict().TermID("life")
	require.True(t, ok)
	require.Equal(t, uint32(0), id)
	_, ok = sa.TermDict().TermID("Life")
	require.False(t, ok)

	term, ok := sa.TermDict().Term(4)
	require.True(t, ok)
	require.Equal(t, "my", term)
	_, ok = sa.TermDict().Term(5)
	require.False(t, ok)

	require.Equal(t, `{"life": 0, "is": 1, "good": 2, "search": 3, "my": 4}`,
		sa.TermDict().String())
}

func TestIndexTermMatrix(t *testing.T) {
	sa := indexDocs(t, []string{"Life is good", "Search is my life", "life, life!"})
	mat := sa.TermMatrix()
	require.Equal(t, 3, mat.Rows())
	require.Equal(t, []TermCount{{0, 1}, {1, 1}, {2, 1}}, mat.Row(0))
	require.Equal(t, []TermCount{{0, 1}, {1, 1}, {3, 1}, {4, 1}}, mat.Row(1))
	require.Equal(t, []TermCount{{0, 2}}, mat.Row(2))
	require.Equal(t, uint32(2), mat.Count(2, 0))
	require.Equal(t, uint32(0), mat.Count(0, 3))
	require.Equal(t, 8, mat.NNZ())
	require.Contains(t, mat.String(), "(2, 0)\t2")

	require.Equal(t, []uint32{3, 4, 2}, sa.DocLens())
	require.InDelta(t, 3.0, sa.AvgDocLen(), 1e-9)
}

func TestIndexTermFreqs(t *testing.T) {
	sa := indexDocs(t, tryoutDocs)
	id, ok := sa.TermDict().TermID("life")
	require.True(t, ok)
	docs, tfs := sa.Posns().TermFreqs(id)
	require.Equal(t, []uint32{0, 1}, docs)
	require.Equal(t, []uint32{1, 1}, tfs)

	require.Equal(t, []float64{1, 1}, sa.TermFreqs([]string{"life"}))
	require.Equal(t, []float64{0, 1}, sa.TermFreqs([]string{"my", "life"}))
	require.Equal(t, []float64{0, 0}, sa.TermFreqs([]string{"life", "my"}))
	require.Equal(t, []float64{0, 0}, sa.TermFreqs([]string{"unknown"}))
	require.Equal(t, 2, sa.DocFreq([]string{"is"}))
	require.Equal(t, 1, sa.DocFreq([]string{"my", "life"}))
}

func TestMatch(t *testing.T) {
	sa := indexDocs(t, tryoutDocs)
	query, err := sa.Tokenize("my life")
	require.NoError(t, err)
	require.Equal(t, []bool{false, true}, sa.Match(query))
	require.Equal(t, []bool{true, true}, sa.Match([]string{"life"}))
	require.Equal(t, []bool{false, false}, sa.Match(nil))
	require.Equal(t, []bool{false, false}, sa.Match([]string{"nope"}))
}

func TestScore(t *testing.T) {
	sa := indexDocs(t, tryoutDocs)
	query, err := sa.Tokenize("my life")
	require.NoError(t, err)

	scores := sa.Score(query, nil)
	require.Len(t, scores, 2)
	require.Equal(t, 0.0, scores[0])
	require.InDelta(t, 0.297671, scores[1], 1e-5)

	legacy := sa.Score(query, BM25Legacy(5, 0.75))
	require.Equal(t, 0.0, legacy[0])
	require.InDelta(t, 0.636332, legacy[1], 1e-5)

	// Served from the cache, and not aliased with it.
	again := sa.Score(query, nil)
	require.Equal(t, scores, again)
	again[1] = 42
	require.InDelta(t, 0.297671, sa.Score(query, nil)[1], 1e-5)
}

func TestScoreOrdering(t *testing.T) {
	sa := indexDocs(t, []string{
		"the quick brown fox",
		"fox fox fox",
		"a lazy dog sleeps all day long in the sun",
		"the fox",
	}, WithScoreCacheSize(0))
	scores := sa.Score([]string{"fox"}, nil)
	require.Equal(t, 0.0, scores[2])
	require.Greater(t, scores[1], scores[3])
	require.Greater(t, scores[3], scores[0])
}

func TestIndexEdgeCases(t *testing.T) {
	sa := indexDocs(t, nil)
	require.Equal(t, 0, sa.Shape())
	require.Equal(t, 0.0, sa.AvgDocLen())
	require.Empty(t, sa.Score([]string{"life"}, nil))
	require.Empty(t, sa.Match([]string{"life"}))

	sa = indexDocs(t, []string{"", "!!!", "hello - world"})
	require.Equal(t, []uint32{0, 1, 3}, sa.DocLens())
	id, ok := sa.TermDict().TermID("")
	require.True(t, ok)
	require.Equal(t, uint32(0), id)
	require.Equal(t, []bool{false, true, false}, sa.Match([]string{""}))
	require.Equal(t, []bool{false, false, true}, sa.Match([]string{"hello", "-", "world"}))
	require.Equal(t, []float64{0, 0, 0}, sa.Score([]string{"missing"}, nil))
}

func TestIndexOptions(t *testing.T) {
	sa := indexDocs(t, tryoutDocs, WithTokenizeFunc("fields", strings.Fields))
	require.Equal(t, "fields", sa.Tokenizer().Name())
	_, ok := sa.TermDict().TermID("Life")
	require.True(t, ok)

	term, ok := tok.GetTokenizer("term")
	require.True(t, ok)
	sa = indexDocs(t, []string{"Hello-World"}, WithTokenizer(term), WithPosnBlockSize(1))
	require.Equal(t, []bool{true}, sa.Match([]string{"hello", "world"}))

	_, err := Index(tryoutDocs, WithPosnBlockSize(0))
	require.Error(t, err)
	_, err = Index(tryoutDocs, WithScoreCacheSize(-1))
	require.Error(t, err)
}

func TestAssemble(t *testing.T) {
	sa := indexDocs(t, []string{"Life is good", "Search is my life", "life, life!"})
	var lists []*posting.List
	require.NoError(t, sa.Posns().Iterate(func(l *posting.List) error {
		lists = append(lists, l)
		return nil
	}))

	again, err := Assemble(sa.TermDict().Terms(), lists, sa.DocLens())
	require.NoError(t, err)
	defer again.Close()
	require.Equal(t, sa.TermDict().Terms(), again.TermDict().Terms())
	require.Equal(t, sa.TermMatrix().String(), again.TermMatrix().String())
	require.Equal(t, sa.AvgDocLen(), again.AvgDocLen())
	query := []string{"my", "life"}
	require.Equal(t, sa.Score(query, nil), again.Score(query, nil))

	_, err = Assemble([]string{"a"}, lists, sa.DocLens())
	require.Error(t, err)
	_, err = Assemble(sa.TermDict().Terms(), lists, []uint32{1})
	require.Error(t, err)
}

func TestConcurrentScore(t *testing.T) {
	sa := indexDocs(t, tryoutDocs)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				scores := sa.Score([]string{"life"}, nil)
				require.Len(t, scores, 2)
				require.Equal(t, []bool{false, true}, sa.Match([]string{"my", "life"}))
			}
		}()
	}
	wg.Wait()
}

type failingTokenizer struct{}

func (failingTokenizer) Name() string     { return "failing" }
func (failingTokenizer) Identifier() byte { return tok.IdentCustom }
func (failingTokenizer) Tokens(s string) ([]string, error) {
	if strings.Contains(s, "bad") {
		return nil, errors.New("cannot tokenize")
	}
	return tok.WsPunc(s), nil
}

func TestIndexTokenizerError(t *testing.T) {
	_, err := Index([]string{"good doc", "bad doc"}, WithTokenizer(failingTokenizer{}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "doc 1")
}

// Term ids follow document order even though documents are tokenized
// concurrently.
func TestIndexTermOrderManyDocs(t *testing.T) {
	docs := make([]string, 500)
	for i := range docs {
		docs[i] = fmt.Sprintf("term%d shared", i)
	}
	sa := indexDocs(t, docs)
	for i := range docs {
		id, ok := sa.TermDict().TermID(fmt.Sprintf("term%d", i))
		require.True(t, ok)
		// term0 is 0, shared is 1, term1 is 2 and so on.
		want := uint32(i + 1)
		if i == 0 {
			want = 0
		}
		require.Equal(t, want, id)
	}
}

/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"time"

	"go.opencensus.io/stats"

	"github.com/hypermodeinc/searcharray/x"
)

// termIDs maps tokens to term ids. It returns false if any token is not in the
// term dictionary.
func (sa *SearchArray) termIDs(tokens []string) ([]uint32, bool) {
	ids := make([]uint32, 0, len(tokens))
	for _, t := range tokens {
		id, ok := sa.termDict.TermID(t)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (sa *SearchArray) phraseFreqs(tokens []string) []uint32 {
	ids, ok := sa.termIDs(tokens)
	if !ok {
		return make([]uint32, sa.Shape())
	}
	return sa.posns.PhraseFreqs(ids, sa.Shape())
}

// TermFreqs returns how many times the tokens occur in every document, as a
// phrase when there is more than one token.
func (sa *SearchArray) TermFreqs(tokens []string) []float64 {
	freqs := sa.phraseFreqs(tokens)
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = float64(f)
	}
	return out
}

// DocFreq returns the number of documents holding the tokens as a phrase.
func (sa *SearchArray) DocFreq(tokens []string) int {
	var n int
	for _, f := range sa.phraseFreqs(tokens) {
		if f > 0 {
			n++
		}
	}
	return n
}

// Match reports for every document whether it holds the tokens as a phrase.
// An empty query matches nothing.
func (sa *SearchArray) Match(tokens []string) []bool {
	ctx := x.MethodContext("match")
	defer x.RecordLatency(ctx, time.Now())
	stats.Record(ctx, x.NumQueries.M(1))

	freqs := sa.phraseFreqs(tokens)
	matches := make([]bool, len(freqs))
	for i, f := range freqs {
		matches[i] = f > 0
	}
	return matches
}

// Score scores every document against the tokens, taken as a phrase. A nil
// sim scores with DefaultSimilarity.
func (sa *SearchArray) Score(tokens []string, sim Similarity) []float64 {
	ctx := x.MethodContext("score")
	defer x.RecordLatency(ctx, time.Now())
	stats.Record(ctx, x.NumQueries.M(1))

	if sim == nil {
		sim = DefaultSimilarity
	}
	var key uint64
	if sa.cache != nil {
		key = scoreKey(sim.Name(), tokens)
		if scores, ok := sa.cache.Get(key); ok {
			stats.Record(ctx, x.NumScoreCacheHits.M(1))
			return append([]float64(nil), scores...)
		}
	}

	tfs := sa.TermFreqs(tokens)
	var df float64
	for _, tf := range tfs {
		if tf > 0 {
			df++
		}
	}
	scores := sim.Score(tfs, df, sa.docLens, sa.avgDocLen, sa.Shape())

	if sa.cache != nil {
		sa.cache.Set(key, append([]float64(nil), scores...), int64(8*len(scores)+8))
	}
	return scores
}

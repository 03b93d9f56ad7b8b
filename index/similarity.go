/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Similarity turns per document term frequencies into per document scores.
type Similarity interface {
	// Name identifies the similarity and its parameters. Two similarities
	// with the same name must score identically.
	Name() string

	// Score returns one score per document. docFreq is the number of
	// documents holding the query.
	Score(termFreqs []float64, docFreq float64, docLens []uint32, avgDocLen float64,
		numDocs int) []float64
}

type bm25 struct {
	k1, b  float64
	legacy bool
}

// BM25 returns the BM25 similarity without the (k1 + 1) factor in the term
// frequency numerator.
func BM25(k1, b float64) Similarity {
	return bm25{k1: k1, b: b}
}

// BM25Legacy returns the BM25 similarity with the (k1 + 1) factor, which
// scales scores without changing their order.
func BM25Legacy(k1, b float64) Similarity {
	return bm25{k1: k1, b: b, legacy: true}
}

// DefaultSimilarity is BM25 with k1 = 1.2 and b = 0.75.
var DefaultSimilarity = BM25(1.2, 0.75)

func (s bm25) Name() string {
	name := "bm25"
	if s.legacy {
		name = "bm25_legacy"
	}
	return fmt.Sprintf("%s(k1=%g,b=%g)", name, s.k1, s.b)
}

func (s bm25) Score(termFreqs []float64, docFreq float64, docLens []uint32,
	avgDocLen float64, numDocs int) []float64 {
	idf := math.Log(1 + (float64(numDocs)-docFreq+0.5)/(docFreq+0.5))
	scores := make([]float64, len(termFreqs))
	for i, tf := range termFreqs {
		if tf == 0 {
			continue
		}
		var lenRatio float64
		if avgDocLen > 0 {
			lenRatio = float64(docLens[i]) / avgDocLen
		}
		norm := tf / (tf + s.k1*(1-s.b+s.b*lenRatio))
		if s.legacy {
			norm *= s.k1 + 1
		}
		scores[i] = idf * norm
	}
	return scores
}

type classic struct{}

// ClassicTFIDF scores sqrt(tf) * idf^2 with idf = 1 + ln(N / (df + 1)).
func ClassicTFIDF() Similarity {
	return classic{}
}

func (classic) Name() string { return "classic" }

func (classic) Score(termFreqs []float64, docFreq float64, docLens []uint32,
	avgDocLen float64, numDocs int) []float64 {
	idf := 1 + math.Log(float64(numDocs)/(docFreq+1))
	scores := make([]float64, len(termFreqs))
	for i, tf := range termFreqs {
		if tf == 0 {
			continue
		}
		scores[i] = math.Sqrt(tf) * idf * idf
	}
	return scores
}

// SimilarityByName returns the similarity for a name used on the command
// line: bm25, bm25_legacy or classic.
func SimilarityByName(name string, k1, b float64) (Similarity, error) {
	switch name {
	case "", "bm25":
		return BM25(k1, b), nil
	case "bm25_legacy":
		return BM25Legacy(k1, b), nil
	case "classic":
		return ClassicTFIDF(), nil
	default:
		return nil, errors.Errorf("Unknown similarity %q", name)
	}
}

/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"runtime"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.opencensus.io/stats"
	"golang.org/x/sync/errgroup"

	"github.com/hypermodeinc/searcharray/posting"
	"github.com/hypermodeinc/searcharray/tok"
	"github.com/hypermodeinc/searcharray/x"
)

// SearchArray is an immutable positional index over a slice of documents.
// Document ids are positions in that slice. It is safe for concurrent use.
type SearchArray struct {
	tokenizer tok.Tokenizer
	termDict  *TermDict
	termMat   *TermMatrix
	posns     *posting.Lists
	docLens   []uint32
	avgDocLen float64

	cache *ristretto.Cache[uint64, []float64]
}

// Index tokenizes docs and builds a SearchArray over them.
func Index(docs []string, opts ...Option) (*SearchArray, error) {
	start := time.Now()
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	dict := newTermDict()
	mat := &TermMatrix{rows: make([][]TermCount, 0, len(docs))}
	builder := posting.NewBuilder(o.posnBlockSize)
	docLens := make([]uint32, 0, len(docs))

	docTokens, err := tokenizeAll(o.tokenizer, docs)
	if err != nil {
		return nil, err
	}
	// Term ids are handed out in document order, so this part stays serial.
	for i, tokens := range docTokens {
		termIDs := make([]uint32, len(tokens))
		counts := make(map[uint32]uint32)
		for j, token := range tokens {
			termIDs[j] = dict.add(token)
			counts[termIDs[j]]++
		}
		if err := builder.AddDoc(uint32(i), termIDs); err != nil {
			return nil, err
		}
		mat.rows = append(mat.rows, sortedRow(counts))
		docLens = append(docLens, uint32(len(tokens)))
	}

	sa, err := newSearchArray(o, dict, mat, builder.Done(), docLens)
	if err != nil {
		return nil, err
	}
	ctx := x.MethodContext("index")
	stats.Record(ctx, x.NumDocsIndexed.M(int64(len(docs))))
	x.RecordLatency(ctx, start)
	glog.V(2).Infof("Indexed %d docs with %d terms using tokenizer %s in %s",
		len(docs), dict.Len(), o.tokenizer.Name(), time.Since(start))
	return sa, nil
}

// tokenizeAll tokenizes every document, spreading the work over GOMAXPROCS
// goroutines.
func tokenizeAll(t tok.Tokenizer, docs []string) ([][]string, error) {
	out := make([][]string, len(docs))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		i, doc := i, doc
		eg.Go(func() error {
			tokens, err := t.Tokens(doc)
			if err != nil {
				return errors.Wrapf(err, "while tokenizing doc %d", i)
			}
			out[i] = tokens
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Assemble rebuilds a SearchArray from its persisted parts: the terms ordered
// by id, one posting list per term and the length of every document.
func Assemble(terms []string, lists []*posting.List, docLens []uint32,
	opts ...Option) (*SearchArray, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(terms) != len(lists) {
		return nil, errors.Errorf("Got %d terms but %d posting lists", len(terms), len(lists))
	}
	dict := newTermDict()
	for i, term := range terms {
		if id := dict.add(term); int(id) != i {
			return nil, errors.Errorf("Duplicate term %q", term)
		}
	}
	posns, err := posting.NewLists(lists)
	if err != nil {
		return nil, err
	}

	mat := &TermMatrix{rows: make([][]TermCount, len(docLens))}
	err = posns.Iterate(func(l *posting.List) error {
		var rerr error
		l.Iterate(func(p *posting.Posting) bool {
			if int(p.DocID) >= len(docLens) {
				rerr = errors.Errorf("Term %d refers to doc %d, but there are %d docs",
					l.TermID, p.DocID, len(docLens))
				return false
			}
			mat.rows[p.DocID] = append(mat.rows[p.DocID],
				TermCount{TermID: l.TermID, Count: uint32(p.Freq())})
			return true
		})
		return rerr
	})
	if err != nil {
		return nil, err
	}
	return newSearchArray(o, dict, mat, posns, docLens)
}

func newSearchArray(o *options, dict *TermDict, mat *TermMatrix, posns *posting.Lists,
	docLens []uint32) (*SearchArray, error) {
	sa := &SearchArray{
		tokenizer: o.tokenizer,
		termDict:  dict,
		termMat:   mat,
		posns:     posns,
		docLens:   docLens,
	}
	if len(docLens) > 0 {
		var total uint64
		for _, l := range docLens {
			total += uint64(l)
		}
		sa.avgDocLen = float64(total) / float64(len(docLens))
	}
	if o.scoreCacheSize > 0 {
		cache, err := newScoreCache(o.scoreCacheSize)
		if err != nil {
			return nil, err
		}
		sa.cache = cache
	}
	return sa, nil
}

func sortedRow(counts map[uint32]uint32) []TermCount {
	row := make([]TermCount, 0, len(counts))
	for id, c := range counts {
		row = append(row, TermCount{TermID: id, Count: c})
	}
	sortRow(row)
	return row
}

// Close releases the score cache.
func (sa *SearchArray) Close() {
	if sa.cache != nil {
		sa.cache.Close()
	}
}

// Shape returns the number of documents.
func (sa *SearchArray) Shape() int {
	return len(sa.docLens)
}

// Tokenizer returns the tokenizer the documents were indexed with.
func (sa *SearchArray) Tokenizer() tok.Tokenizer {
	return sa.tokenizer
}

// Tokenize tokenizes a query with the tokenizer of the index.
func (sa *SearchArray) Tokenize(query string) ([]string, error) {
	return sa.tokenizer.Tokens(query)
}

func (sa *SearchArray) TermDict() *TermDict     { return sa.termDict }
func (sa *SearchArray) TermMatrix() *TermMatrix { return sa.termMat }
func (sa *SearchArray) Posns() *posting.Lists   { return sa.posns }
func (sa *SearchArray) AvgDocLen() float64      { return sa.avgDocLen }

// DocLens returns the number of tokens of every document.
func (sa *SearchArray) DocLens() []uint32 {
	out := make([]uint32, len(sa.docLens))
	copy(out, sa.docLens)
	return out
}

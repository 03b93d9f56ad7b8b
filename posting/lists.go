/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package posting

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/codec"
)

// Lists holds the posting lists of an index, addressed by term id. Term ids
// are dense, so the list for term t lives at index t.
type Lists struct {
	lists []*List
}

// NewLists builds Lists out of lists with dense term ids in any order.
func NewLists(lists []*List) (*Lists, error) {
	out := make([]*List, len(lists))
	for _, l := range lists {
		if int(l.TermID) >= len(out) || out[l.TermID] != nil {
			return nil, errors.Errorf("term ids are not dense: unexpected term %d", l.TermID)
		}
		out[l.TermID] = l
	}
	return &Lists{lists: out}, nil
}

// Len returns the number of terms.
func (ls *Lists) Len() int {
	return len(ls.lists)
}

// Get returns the list for termID, or nil for an unknown term.
func (ls *Lists) Get(termID uint32) *List {
	if int(termID) >= len(ls.lists) {
		return nil
	}
	return ls.lists[termID]
}

// Iterate calls f for every list in term id order. It stops at the first
// error and returns it.
func (ls *Lists) Iterate(f func(l *List) error) error {
	for _, l := range ls.lists {
		if err := f(l); err != nil {
			return err
		}
	}
	return nil
}

// TermFreqs returns the documents holding termID and the frequency of the term
// in each. An unknown term yields empty slices.
func (ls *Lists) TermFreqs(termID uint32) (docIDs []uint32, tfs []uint32) {
	l := ls.Get(termID)
	if l == nil {
		return []uint32{}, []uint32{}
	}
	return l.TermFreqs()
}

// PhraseFreqs returns, for every one of numDocs documents, how many times the
// terms occur next to each other in the given order. A single term gives its
// plain term frequency. Any unknown term gives all zeros.
func (ls *Lists) PhraseFreqs(termIDs []uint32, numDocs int) []uint32 {
	freqs := make([]uint32, numDocs)
	if len(termIDs) == 0 {
		return freqs
	}
	lists := make([]*List, 0, len(termIDs))
	for _, id := range termIDs {
		l := ls.Get(id)
		if l == nil {
			return freqs
		}
		lists = append(lists, l)
	}

	if len(lists) == 1 {
		lists[0].Iterate(func(p *Posting) bool {
			if int(p.DocID) < numDocs {
				freqs[p.DocID] = uint32(p.Freq())
			}
			return true
		})
		return freqs
	}

	// Drive the intersection with the shortest list.
	driver := 0
	for i, l := range lists {
		if l.Length() < lists[driver].Length() {
			driver = i
		}
	}
	lists[driver].Iterate(func(p *Posting) bool {
		if int(p.DocID) >= numDocs {
			return true
		}
		posns := make([][]uint32, len(lists))
		for i, l := range lists {
			if posns[i] = l.Posns(p.DocID); posns[i] == nil {
				return true
			}
		}
		freqs[p.DocID] = phraseCount(posns)
		return true
	})
	return freqs
}

// phraseCount counts the positions s in posns[0] such that posns[i] holds s+i
// for every i.
func phraseCount(posns [][]uint32) uint32 {
	var count uint32
	for _, start := range posns[0] {
		found := true
		for i := 1; i < len(posns) && found; i++ {
			found = contains(posns[i], start+uint32(i))
		}
		if found {
			count++
		}
	}
	return count
}

func contains(sorted []uint32, v uint32) bool {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= v })
	return idx < len(sorted) && sorted[idx] == v
}

// Builder accumulates the posting lists of documents added in ascending doc
// id order.
type Builder struct {
	blockSize int
	started   bool
	lastDoc   uint32
	lists     []*List
}

// NewBuilder returns a Builder encoding positions in blocks of blockSize.
func NewBuilder(blockSize int) *Builder {
	return &Builder{blockSize: blockSize}
}

// AddDoc adds a document, given the term id at every position.
func (b *Builder) AddDoc(docID uint32, termIDs []uint32) error {
	if b.started && docID <= b.lastDoc {
		return errors.Errorf("doc %d added after doc %d", docID, b.lastDoc)
	}
	b.started = true
	b.lastDoc = docID

	posns := make(map[uint32][]uint32)
	var order []uint32
	for pos, id := range termIDs {
		if _, ok := posns[id]; !ok {
			order = append(order, id)
		}
		posns[id] = append(posns[id], uint32(pos))
	}
	for _, id := range order {
		for int(id) >= len(b.lists) {
			b.lists = append(b.lists, &List{TermID: uint32(len(b.lists))})
		}
		l := b.lists[id]
		l.Postings = append(l.Postings, Posting{
			DocID: docID,
			Posns: codec.Encode(posns[id], b.blockSize),
		})
	}
	return nil
}

// Done returns the built lists. The Builder must not be used afterwards.
func (b *Builder) Done() *Lists {
	return &Lists{lists: b.lists}
}

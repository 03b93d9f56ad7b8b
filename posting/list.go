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

// Posting records the positions of a term within one document.
type Posting struct {
	DocID uint32          `cbor:"1,keyasint"`
	Posns *codec.PosnPack `cbor:"2,keyasint"`
}

// Freq returns the number of times the term occurs in the document.
func (p *Posting) Freq() int {
	return codec.ExactLen(p.Posns)
}

// List is the posting list of a single term. Postings are sorted by DocID and
// every posting holds at least one position.
type List struct {
	TermID   uint32    `cbor:"1,keyasint"`
	Postings []Posting `cbor:"2,keyasint,omitempty"`
}

type ByDocID []Posting

func (pa ByDocID) Len() int           { return len(pa) }
func (pa ByDocID) Swap(i, j int)      { pa[i], pa[j] = pa[j], pa[i] }
func (pa ByDocID) Less(i, j int) bool { return pa[i].DocID < pa[j].DocID }

// Iterate calls f for every posting in DocID order, until f returns false.
func (l *List) Iterate(f func(p *Posting) bool) {
	for i := range l.Postings {
		if !f(&l.Postings[i]) {
			return
		}
	}
}

// Length returns the number of documents holding the term.
func (l *List) Length() int {
	return len(l.Postings)
}

// find returns the posting for docID, or nil.
func (l *List) find(docID uint32) *Posting {
	idx := sort.Search(len(l.Postings), func(i int) bool {
		return l.Postings[i].DocID >= docID
	})
	if idx < len(l.Postings) && l.Postings[idx].DocID == docID {
		return &l.Postings[idx]
	}
	return nil
}

// Posns returns the decoded positions of the term in docID, or nil if the
// term does not occur there.
func (l *List) Posns(docID uint32) []uint32 {
	p := l.find(docID)
	if p == nil {
		return nil
	}
	return codec.Decode(p.Posns)
}

// TermFreqs returns the documents holding the term, in ascending order, along
// with the number of occurrences in each.
func (l *List) TermFreqs() (docIDs []uint32, tfs []uint32) {
	docIDs = make([]uint32, 0, len(l.Postings))
	tfs = make([]uint32, 0, len(l.Postings))
	for i := range l.Postings {
		docIDs = append(docIDs, l.Postings[i].DocID)
		tfs = append(tfs, uint32(l.Postings[i].Freq()))
	}
	return docIDs, tfs
}

// Marshal encodes the list for storage.
func (l *List) Marshal() ([]byte, error) {
	data, err := codec.Marshal(l)
	return data, errors.Wrapf(err, "while marshalling posting list for term %d", l.TermID)
}

// UnmarshalList decodes a list written by Marshal.
func UnmarshalList(data []byte) (*List, error) {
	l := &List{}
	if err := codec.Unmarshal(data, l); err != nil {
		return nil, errors.Wrap(err, "while unmarshalling posting list")
	}
	if !sort.IsSorted(ByDocID(l.Postings)) {
		return nil, errors.Errorf("posting list for term %d is not sorted", l.TermID)
	}
	return l, nil
}

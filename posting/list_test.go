/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package posting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// "life is good", "search is my life", "life life"
func buildLists(t *testing.T) *Lists {
	b := NewBuilder(4)
	require.NoError(t, b.AddDoc(0, []uint32{0, 1, 2}))
	require.NoError(t, b.AddDoc(1, []uint32{3, 1, 4, 0}))
	require.NoError(t, b.AddDoc(2, []uint32{0, 0}))
	return b.Done()
}

func TestBuilder(t *testing.T) {
	ls := buildLists(t)
	require.Equal(t, 5, ls.Len())

	l := ls.Get(0)
	require.NotNil(t, l)
	require.Equal(t, 3, l.Length())
	require.Equal(t, []uint32{0}, l.Posns(0))
	require.Equal(t, []uint32{3}, l.Posns(1))
	require.Equal(t, []uint32{0, 1}, l.Posns(2))
	require.Nil(t, ls.Get(4).Posns(0))
	require.Nil(t, ls.Get(5))
}

func TestBuilderOrder(t *testing.T) {
	b := NewBuilder(4)
	require.NoError(t, b.AddDoc(3, []uint32{0}))
	require.Error(t, b.AddDoc(3, []uint32{0}))
	require.Error(t, b.AddDoc(1, []uint32{0}))
	require.NoError(t, b.AddDoc(7, nil))
}

func TestTermFreqs(t *testing.T) {
	ls := buildLists(t)
	docs, tfs := ls.TermFreqs(0)
	require.Equal(t, []uint32{0, 1, 2}, docs)
	require.Equal(t, []uint32{1, 1, 2}, tfs)

	docs, tfs = ls.TermFreqs(1)
	require.Equal(t, []uint32{0, 1}, docs)
	require.Equal(t, []uint32{1, 1}, tfs)

	docs, tfs = ls.TermFreqs(42)
	require.Empty(t, docs)
	require.Empty(t, tfs)
}

func TestPhraseFreqs(t *testing.T) {
	ls := buildLists(t)
	tests := []struct {
		terms []uint32
		freqs []uint32
	}{
		{terms: nil, freqs: []uint32{0, 0, 0}},
		{terms: []uint32{0}, freqs: []uint32{1, 1, 2}},
		{terms: []uint32{4, 0}, freqs: []uint32{0, 1, 0}},
		{terms: []uint32{0, 4}, freqs: []uint32{0, 0, 0}},
		{terms: []uint32{0, 1, 2}, freqs: []uint32{1, 0, 0}},
		{terms: []uint32{0, 0}, freqs: []uint32{0, 0, 1}},
		{terms: []uint32{1, 9}, freqs: []uint32{0, 0, 0}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.freqs, ls.PhraseFreqs(tc.terms, 3), "terms %v", tc.terms)
	}
}

func TestListMarshal(t *testing.T) {
	ls := buildLists(t)
	var out []*List
	require.NoError(t, ls.Iterate(func(l *List) error {
		data, err := l.Marshal()
		if err != nil {
			return err
		}
		got, err := UnmarshalList(data)
		if err != nil {
			return err
		}
		out = append(out, got)
		return nil
	}))

	// Reverse to check NewLists does not depend on order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	again, err := NewLists(out)
	require.NoError(t, err)
	require.Equal(t, ls.Len(), again.Len())
	for id := uint32(0); id < uint32(ls.Len()); id++ {
		require.Equal(t, ls.Get(id).Postings, again.Get(id).Postings)
	}
	require.Equal(t, ls.PhraseFreqs([]uint32{4, 0}, 3), again.PhraseFreqs([]uint32{4, 0}, 3))
}

func TestNewListsNotDense(t *testing.T) {
	_, err := NewLists([]*List{{TermID: 0}, {TermID: 2}})
	require.Error(t, err)
	_, err = NewLists([]*List{{TermID: 0}, {TermID: 0}})
	require.Error(t, err)
}

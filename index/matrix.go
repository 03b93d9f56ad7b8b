/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"fmt"
	"sort"
	"strings"
)

// TermCount is a non-zero cell of the term matrix.
type TermCount struct {
	TermID uint32
	Count  uint32
}

// TermMatrix is the sparse document by term count matrix. Row i holds the
// terms of document i sorted by term id.
type TermMatrix struct {
	rows [][]TermCount
}

// Rows returns the number of documents.
func (m *TermMatrix) Rows() int {
	return len(m.rows)
}

// Row returns the terms of document doc. The returned slice must not be
// modified.
func (m *TermMatrix) Row(doc int) []TermCount {
	return m.rows[doc]
}

// Count returns how many times termID occurs in doc.
func (m *TermMatrix) Count(doc int, termID uint32) uint32 {
	for _, tc := range m.rows[doc] {
		if tc.TermID == termID {
			return tc.Count
		}
		if tc.TermID > termID {
			break
		}
	}
	return 0
}

// NNZ returns the number of stored cells.
func (m *TermMatrix) NNZ() int {
	var n int
	for _, r := range m.rows {
		n += len(r)
	}
	return n
}

func (m *TermMatrix) String() string {
	var sb strings.Builder
	for doc, row := range m.rows {
		for _, tc := range row {
			fmt.Fprintf(&sb, "  (%d, %d)\t%d\n", doc, tc.TermID, tc.Count)
		}
	}
	return sb.String()
}

func sortRow(row []TermCount) {
	sort.Slice(row, func(i, j int) bool { return row[i].TermID < row[j].TermID })
}

/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"fmt"
	"strings"
)

// TermDict maps terms to dense ids, assigned in order of first occurrence.
type TermDict struct {
	ids   map[string]uint32
	terms []string
}

func newTermDict() *TermDict {
	return &TermDict{ids: make(map[string]uint32)}
}

func (d *TermDict) add(term string) uint32 {
	if id, ok := d.ids[term]; ok {
		return id
	}
	id := uint32(len(d.terms))
	d.ids[term] = id
	d.terms = append(d.terms, term)
	return id
}

// TermID returns the id of term.
func (d *TermDict) TermID(term string) (uint32, bool) {
	id, ok := d.ids[term]
	return id, ok
}

// Term returns the term with the given id.
func (d *TermDict) Term(id uint32) (string, bool) {
	if int(id) >= len(d.terms) {
		return "", false
	}
	return d.terms[id], true
}

// Len returns the number of distinct terms.
func (d *TermDict) Len() int {
	return len(d.terms)
}

// Terms returns all terms ordered by id.
func (d *TermDict) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

func (d *TermDict) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for id, term := range d.terms {
		if id > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %d", term, id)
	}
	sb.WriteByte('}')
	return sb.String()
}

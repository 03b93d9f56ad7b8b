/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Key prefixes used by the persisted index. Every key starts with one of these
// bytes followed by a big endian id, so that keys of the same kind sort by id.
const (
	ByteMeta    = byte(0x00)
	ByteTerm    = byte(0x01)
	ByteDoc     = byte(0x02)
	BytePosting = byte(0x03)
)

// MetaKey returns the key holding the index metadata.
func MetaKey() []byte {
	return []byte{ByteMeta}
}

// TermKey returns the key for the term with the given id.
func TermKey(termID uint32) []byte {
	return idKey(ByteTerm, termID)
}

// DocKey returns the key for the document length of doc.
func DocKey(docID uint32) []byte {
	return idKey(ByteDoc, docID)
}

// PostingKey returns the key for the posting list of the given term.
func PostingKey(termID uint32) []byte {
	return idKey(BytePosting, termID)
}

func idKey(prefix byte, id uint32) []byte {
	buf := make([]byte, 5)
	buf[0] = prefix
	binary.BigEndian.PutUint32(buf[1:], id)
	return buf
}

// ParsedKey represents a key that has been parsed into its prefix and id.
type ParsedKey struct {
	Prefix byte
	ID     uint32
}

// Parse would parse the key. ParsedKey does not reuse the key slice.
func Parse(key []byte) (ParsedKey, error) {
	var p ParsedKey
	if len(key) == 1 && key[0] == ByteMeta {
		p.Prefix = ByteMeta
		return p, nil
	}
	if len(key) != 5 {
		return p, errors.Errorf("Invalid key of length %d: %x", len(key), key)
	}
	switch key[0] {
	case ByteTerm, ByteDoc, BytePosting:
	default:
		return p, errors.Errorf("Invalid key prefix %#x", key[0])
	}
	p.Prefix = key[0]
	p.ID = binary.BigEndian.Uint32(key[1:])
	return p, nil
}

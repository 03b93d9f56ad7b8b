/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package codec packs sorted token positions into blocks of group-varint
// encoded deltas, and serializes packs with CBOR.
package codec

import (
	"bytes"

	"github.com/dgryski/go-groupvarint"
)

// PosnBlock holds up to BlockSize positions: the first one as Base and the
// rest as deltas from their predecessor.
type PosnBlock struct {
	Base   uint32 `cbor:"1,keyasint"`
	Num    uint32 `cbor:"2,keyasint"`
	Deltas []byte `cbor:"3,keyasint,omitempty"`
}

// PosnPack is an encoded, sorted list of positions.
type PosnPack struct {
	BlockSize uint32      `cbor:"1,keyasint"`
	Blocks    []PosnBlock `cbor:"2,keyasint,omitempty"`
}

type Encoder struct {
	BlockSize int
	pack      *PosnPack
	posns     []uint32
}

func (e *Encoder) packBlock() {
	if len(e.posns) == 0 {
		return
	}
	block := PosnBlock{Base: e.posns[0], Num: uint32(len(e.posns))}
	last := e.posns[0]
	rest := e.posns[1:]

	var out bytes.Buffer
	buf := make([]byte, 17)
	tmp := make([]uint32, 4)
	for len(rest) > 0 {
		for i := 0; i < 4; i++ {
			if i >= len(rest) {
				// Padding with '0' because Encode4 encodes only in batch of 4.
				tmp[i] = 0
			} else {
				tmp[i] = rest[i] - last
				last = rest[i]
			}
		}
		out.Write(groupvarint.Encode4(buf, tmp))

		if len(rest) <= 4 {
			break
		}
		rest = rest[4:]
	}

	block.Deltas = out.Bytes()
	e.pack.Blocks = append(e.pack.Blocks, block)
}

// Add appends posn to the pack. Positions must be added in ascending order.
func (e *Encoder) Add(posn uint32) {
	if e.pack == nil {
		e.pack = &PosnPack{BlockSize: uint32(e.BlockSize)}
	}
	e.posns = append(e.posns, posn)
	if len(e.posns) >= e.BlockSize {
		e.packBlock()
		e.posns = e.posns[:0]
	}
}

// Done flushes the pending block and returns the pack.
func (e *Encoder) Done() *PosnPack {
	if e.pack == nil {
		e.pack = &PosnPack{BlockSize: uint32(e.BlockSize)}
	}
	e.packBlock()
	e.posns = e.posns[:0]
	return e.pack
}

type Decoder struct {
	Pack     *PosnPack
	blockIdx int
	posns    []uint32
}

func (d *Decoder) unpackBlock() []uint32 {
	if cap(d.posns) == 0 {
		d.posns = make([]uint32, 0, d.Pack.BlockSize)
	} else {
		d.posns = d.posns[:0]
	}

	if d.blockIdx >= len(d.Pack.Blocks) {
		return d.posns
	}
	block := d.Pack.Blocks[d.blockIdx]

	last := block.Base
	d.posns = append(d.posns, last)

	var tmp [4]uint32
	// Decoding always expects the encoded byte array to be of length >= 4.
	// Padding doesn't affect the decoded values. Copy so that the pack is
	// never written to.
	deltas := make([]byte, 0, len(block.Deltas)+3)
	deltas = append(deltas, block.Deltas...)
	deltas = append(deltas, 0, 0, 0)

	// A group of 4 needs at least 5 bytes. Anything shorter is padding.
	for len(deltas) >= 5 {
		groupvarint.Decode4(tmp[:], deltas)
		deltas = deltas[groupvarint.BytesUsed[deltas[0]]:]
		for i := 0; i < 4; i++ {
			last += tmp[i]
			d.posns = append(d.posns, last)
		}
	}

	d.posns = d.posns[:block.Num]
	return d.posns
}

// Start resets the decoder and returns the positions of the first block.
func (d *Decoder) Start() []uint32 {
	d.blockIdx = 0
	return d.unpackBlock()
}

// Next moves to the next block and returns its positions.
func (d *Decoder) Next() []uint32 {
	if d.blockIdx >= len(d.Pack.Blocks) {
		return d.posns[:0]
	}
	d.blockIdx++
	return d.unpackBlock()
}

// Valid reports whether the decoder points at a block.
func (d *Decoder) Valid() bool {
	return d.blockIdx < len(d.Pack.Blocks)
}

// Posns are owned by the Decoder, and the slice contents would be changed on
// the next call. They should be copied if passed around.
func (d *Decoder) Posns() []uint32 {
	return d.posns
}

// Encode packs the sorted positions into blocks of blockSize.
func Encode(posns []uint32, blockSize int) *PosnPack {
	enc := Encoder{BlockSize: blockSize}
	for _, p := range posns {
		enc.Add(p)
	}
	return enc.Done()
}

// Decode returns all the positions held by pack.
func Decode(pack *PosnPack) []uint32 {
	if pack == nil {
		return []uint32{}
	}
	out := make([]uint32, 0, ExactLen(pack))
	dec := Decoder{Pack: pack}
	for posns := dec.Start(); dec.Valid(); posns = dec.Next() {
		out = append(out, posns...)
	}
	return out
}

// ExactLen returns the number of positions held by pack.
func ExactLen(pack *PosnPack) int {
	if pack == nil {
		return 0
	}
	var n int
	for _, b := range pack.Blocks {
		n += int(b.Num)
	}
	return n
}

// ApproxLen would return the number of positions, assuming every block is full.
func ApproxLen(pack *PosnPack) int {
	if pack == nil {
		return 0
	}
	return int(pack.BlockSize) * len(pack.Blocks)
}

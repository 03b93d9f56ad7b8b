/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"encoding/binary"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

func newScoreCache(maxCost int64) (*ristretto.Cache[uint64, []float64], error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []float64]{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	return cache, errors.Wrap(err, "while creating score cache")
}

// scoreKey fingerprints a similarity name and query tokens. Every part is
// length prefixed, so that token boundaries are part of the key.
func scoreKey(sim string, tokens []string) uint64 {
	buf := make([]byte, 0, 64)
	buf = binary.AppendUvarint(buf, uint64(len(sim)))
	buf = append(buf, sim...)
	for _, t := range tokens {
		buf = binary.AppendUvarint(buf, uint64(len(t)))
		buf = append(buf, t...)
	}
	return farm.Fingerprint64(buf)
}

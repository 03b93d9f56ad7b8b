/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

// Options stores the options shared by the indexing packages.
type Options struct {
	// Tokenizer is the name of the registered tokenizer used for documents and
	// queries.
	Tokenizer string
	// PosnBlockSize is the number of positions held in one encoded block.
	PosnBlockSize int
	// ScoreCacheSize is the maximum cost of the score cache in bytes. Zero
	// disables the cache.
	ScoreCacheSize int64
}

// Config stores the global instance of this package's options.
var Config = Options{
	Tokenizer:      "wspunc",
	PosnBlockSize:  256,
	ScoreCacheSize: 32 << 20,
}

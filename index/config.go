/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package index builds a search array: a positional inverted index over a
// slice of documents, scored with BM25 style similarities.
package index

import (
	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/tok"
	"github.com/hypermodeinc/searcharray/x"
)

type options struct {
	tokenizer      tok.Tokenizer
	posnBlockSize  int
	scoreCacheSize int64
}

// Option configures Index and Assemble.
type Option func(*options)

// WithTokenizer sets the tokenizer used for documents. Queries should be
// tokenized by the same tokenizer, see SearchArray.Tokenize. Documents are
// tokenized concurrently, so t must be safe for concurrent use.
func WithTokenizer(t tok.Tokenizer) Option {
	return func(o *options) { o.tokenizer = t }
}

// WithTokenizeFunc is WithTokenizer for a plain function.
func WithTokenizeFunc(name string, fn func(string) []string) Option {
	return WithTokenizer(tok.NewFuncTokenizer(name, fn))
}

// WithPosnBlockSize sets how many positions go into one encoded block.
func WithPosnBlockSize(n int) Option {
	return func(o *options) { o.posnBlockSize = n }
}

// WithScoreCacheSize sets the score cache size in bytes. Zero disables it.
func WithScoreCacheSize(n int64) Option {
	return func(o *options) { o.scoreCacheSize = n }
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		posnBlockSize:  x.Config.PosnBlockSize,
		scoreCacheSize: x.Config.ScoreCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tokenizer == nil {
		t, ok := tok.GetTokenizer(x.Config.Tokenizer)
		if !ok {
			return nil, errors.Errorf("Invalid tokenizer %s", x.Config.Tokenizer)
		}
		o.tokenizer = t
	}
	if o.posnBlockSize <= 0 {
		return nil, errors.Errorf("Invalid posn block size %d", o.posnBlockSize)
	}
	if o.scoreCacheSize < 0 {
		return nil, errors.Errorf("Invalid score cache size %d", o.scoreCacheSize)
	}
	return o, nil
}

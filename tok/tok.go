/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tok

import (
	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/x"
)

// Tokenizer identifiers are unique and can't be reused.
// The range 0x00 - 0x7f is system reserved.
// The range 0x80 - 0xff is for custom tokenizers.
const (
	IdentNone   = 0x0
	IdentWsPunc = 0x1
	IdentTerm   = 0x2
	IdentCustom = 0x80
)

// Tokenizer defines what a tokenizer must provide.
type Tokenizer interface {

	// Name is name of tokenizer. This should be unique.
	Name() string

	// Tokens return tokens for a given value in the order they occur. The
	// tokens shouldn't be encoded with the byte identifier.
	Tokens(string) ([]string, error)

	// Identifier returns the prefix byte for this token type. This should be
	// unique. The range 0x80 to 0xff (inclusive) is reserved for user-provided
	// custom tokenizers.
	Identifier() byte
}

var tokenizers = make(map[string]Tokenizer)

func init() {
	registerBleveTokenizers()
	registerTokenizer(WsPuncTokenizer{})
	registerTokenizer(TermTokenizer{})
}

// BuildTokens tokenizes a value, creating strings that can be used to create
// index keys.
func BuildTokens(val string, t Tokenizer) ([]string, error) {
	tokens, err := t.Tokens(val)
	if err != nil {
		return nil, err
	}
	id := t.Identifier()
	for i := range tokens {
		tokens[i] = encodeToken(tokens[i], id)
	}
	return tokens, nil
}

// GetTokenizerByID tries to find a tokenizer by id in the registered list.
// Returns the tokenizer and true if found, otherwise nil and false.
func GetTokenizerByID(id byte) (Tokenizer, bool) {
	for _, t := range tokenizers {
		if id == t.Identifier() {
			return t, true
		}
	}
	return nil, false
}

// GetTokenizer returns tokenizer given unique name.
func GetTokenizer(name string) (Tokenizer, bool) {
	t, found := tokenizers[name]
	return t, found
}

// GetTokenizers returns a list of tokenizer given a list of unique names.
func GetTokenizers(names []string) ([]Tokenizer, error) {
	var tokenizers []Tokenizer
	for _, name := range names {
		t, found := GetTokenizer(name)
		if !found {
			return nil, errors.Errorf("Invalid tokenizer %s", name)
		}
		tokenizers = append(tokenizers, t)
	}
	return tokenizers, nil
}

func registerTokenizer(t Tokenizer) {
	_, ok := tokenizers[t.Name()]
	x.AssertTruef(!ok, "Duplicate tokenizer: %s", t.Name())
	tokenizers[t.Name()] = t
}

// WsPuncTokenizer splits on whitespace and strips punctuation. See WsPunc.
type WsPuncTokenizer struct{}

func (t WsPuncTokenizer) Name() string { return "wspunc" }
func (t WsPuncTokenizer) Tokens(s string) ([]string, error) {
	return WsPunc(s), nil
}
func (t WsPuncTokenizer) Identifier() byte { return IdentWsPunc }

// TermTokenizer splits on unicode word boundaries and lowercases, using the
// bleve term analyzer.
type TermTokenizer struct{}

func (t TermTokenizer) Name() string { return "term" }
func (t TermTokenizer) Tokens(s string) ([]string, error) {
	return analyze(termAnalyzerName, s)
}
func (t TermTokenizer) Identifier() byte { return IdentTerm }

// FuncTokenizer wraps a plain tokenize function. It is not registered, and is
// meant for callers that bring their own tokenization.
type FuncTokenizer struct {
	name string
	fn   func(string) []string
}

// NewFuncTokenizer returns a Tokenizer calling fn.
func NewFuncTokenizer(name string, fn func(string) []string) FuncTokenizer {
	return FuncTokenizer{name: name, fn: fn}
}

func (t FuncTokenizer) Name() string { return t.name }
func (t FuncTokenizer) Tokens(s string) ([]string, error) {
	return t.fn(s), nil
}
func (t FuncTokenizer) Identifier() byte { return IdentCustom }

func encodeToken(tok string, typ byte) string {
	return string(typ) + tok
}

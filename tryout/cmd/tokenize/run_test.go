/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tokenize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/searcharray/tok"
)

func TestTokenizeLines(t *testing.T) {
	in := strings.NewReader("hello, world!\n\n!!!\nhello - world\n")
	var out bytes.Buffer
	require.NoError(t, tokenizeLines(in, &out, tok.WsPuncTokenizer{}))
	require.Equal(t, "[\"hello\" \"world\"]\n[]\n[\"\"]\n[\"hello\" \"-\" \"world\"]\n", out.String())
}

func TestPrintTokens(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTokens(&out, tok.WsPuncTokenizer{}, "hello-world-programming"))
	require.Equal(t, "[\"hello\" \"world\" \"programming\"]\n", out.String())
}

func TestPrintPositions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPositions(&out, tok.WsPuncName, "Hello, world"))
	require.Equal(t, "1\t0:6\t\"hello\"\n2\t7:12\t\"world\"\n", out.String())

	require.Error(t, printPositions(&out, "missing", "x"))
}

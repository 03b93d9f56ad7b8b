/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package search

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/searcharray/index"
	"github.com/hypermodeinc/searcharray/store"
)

func TestSearch(t *testing.T) {
	sa, err := index.Index([]string{"Life is good", "Search is my life", "my life, my rules"})
	require.NoError(t, err)
	defer sa.Close()

	var out bytes.Buffer
	require.NoError(t, search(&out, sa, "My life!", index.DefaultSimilarity, 0))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	require.Equal(t, `query "My life!": 2 matches (bm25(k1=1.2,b=0.75))`, string(lines[0]))

	out.Reset()
	require.NoError(t, search(&out, sa, "life", index.DefaultSimilarity, 1))
	lines = bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	out.Reset()
	require.NoError(t, search(&out, sa, "nothing here", index.DefaultSimilarity, 0))
	require.Equal(t, "query \"nothing here\": 0 matches (bm25(k1=1.2,b=0.75))\n", out.String())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	sa, err := index.Index([]string{"Life is good", "Search is my life"})
	require.NoError(t, err)
	defer sa.Close()
	require.NoError(t, st.Save(sa))
	require.NoError(t, st.Close())

	var out bytes.Buffer
	opt := options{dir: dir, query: "my life", similarity: "bm25_legacy", k1: 5, b: 0.75}
	require.NoError(t, run(&out, opt))
	require.Contains(t, out.String(), "1\t0.636332\n")

	opt.similarity = "nope"
	require.Error(t, run(&out, opt))
}

/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/searcharray/store"
)

const docsYAML = `
- Life is good
- Search is my life
- "hello - world"
`

func TestReadDocs(t *testing.T) {
	docs, err := readDocs(strings.NewReader(docsYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"Life is good", "Search is my life", "hello - world"}, docs)

	_, err = readDocs(strings.NewReader("docs: {a: b}"))
	require.Error(t, err)
}

func TestRunStdin(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(docsYAML), &out, options{docsFile: "-", dir: dir}))
	require.Contains(t, out.String(), "Indexed 3 docs, 8 terms")

	st, err := store.Open(dir)
	require.NoError(t, err)
	defer st.Close()
	sa, err := st.Load()
	require.NoError(t, err)
	defer sa.Close()
	require.Equal(t, []bool{false, false, true}, sa.Match([]string{"hello", "-", "world"}))
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	docsFile := filepath.Join(dir, "docs.yaml")
	require.NoError(t, os.WriteFile(docsFile, []byte(docsYAML), 0644))

	var out bytes.Buffer
	require.NoError(t, run(nil, &out, options{docsFile: docsFile, dir: filepath.Join(dir, "p")}))
	require.Contains(t, out.String(), "Indexed 3 docs")

	err := run(nil, &out, options{docsFile: filepath.Join(dir, "missing.yaml"), dir: dir})
	require.Error(t, err)
}

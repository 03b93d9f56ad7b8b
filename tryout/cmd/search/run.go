/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package search

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hypermodeinc/searcharray/index"
	"github.com/hypermodeinc/searcharray/store"
	"github.com/hypermodeinc/searcharray/x"
)

// Search is the sub-command invoked when running "tryout search".
var Search x.SubCommand

type options struct {
	dir        string
	query      string
	similarity string
	k1, b      float64
	top        int
}

func init() {
	Search.Cmd = &cobra.Command{
		Use:   "search",
		Short: "Score a phrase query against a stored index",
		Run: func(cmd *cobra.Command, args []string) {
			opt := options{
				dir:        Search.GetStringP("dir", "d", "t"),
				query:      Search.GetStringP("query", "q", ""),
				similarity: Search.GetStringP("similarity", "", "bm25"),
				k1:         Search.GetFloat64P("k1", "", 1.2),
				b:          Search.GetFloat64P("b", "", 0.75),
				top:        Search.GetIntP("top", "", 10),
			}
			x.Check(run(cmd.OutOrStdout(), opt))
		},
	}
	Search.EnvPrefix = "TRYOUT_SEARCH"

	flags := Search.Cmd.Flags()
	flags.StringP("dir", "d", "t", "Directory of the store to read.")
	flags.StringP("query", "q", "", "Query text, tokenized like the documents.")
	flags.String("similarity", "bm25", "One of bm25, bm25_legacy or classic.")
	flags.Float64("k1", 1.2, "BM25 k1.")
	flags.Float64("b", 0.75, "BM25 b.")
	flags.Int("top", 10, "Number of results to print. Zero prints all matches.")
}

type result struct {
	doc   int
	score float64
}

func run(w io.Writer, opt options) error {
	sim, err := index.SimilarityByName(opt.similarity, opt.k1, opt.b)
	if err != nil {
		return err
	}
	st, err := store.Open(opt.dir)
	if err != nil {
		return err
	}
	defer st.Close()
	sa, err := st.Load()
	if err != nil {
		return err
	}
	defer sa.Close()
	return search(w, sa, opt.query, sim, opt.top)
}

func search(w io.Writer, sa *index.SearchArray, query string, sim index.Similarity,
	top int) error {
	tokens, err := sa.Tokenize(query)
	if err != nil {
		return err
	}
	matches := sa.Match(tokens)
	scores := sa.Score(tokens, sim)

	var results []result
	for doc, ok := range matches {
		if ok {
			results = append(results, result{doc: doc, score: scores[doc]})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if top > 0 && len(results) > top {
		results = results[:top]
	}

	if _, err := fmt.Fprintf(w, "query %q: %d matches (%s)\n",
		query, len(results), sim.Name()); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d\t%.6f\n", r.doc, r.score); err != nil {
			return err
		}
	}
	return nil
}

/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package run

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/hypermodeinc/searcharray/codec"
	"github.com/hypermodeinc/searcharray/index"
	"github.com/hypermodeinc/searcharray/posting"
	"github.com/hypermodeinc/searcharray/x"
)

// Run is the sub-command invoked when running "tryout run". It indexes two
// sample documents and prints the index structures and the scores of a
// sample query.
var Run x.SubCommand

var (
	sampleDocs  = []string{"Life is good", "Search is my life"}
	sampleTerm  = "life"
	sampleQuery = "my life"
)

func init() {
	Run.Cmd = &cobra.Command{
		Use:   "run",
		Short: "Index sample documents and score a sample query",
		Run: func(cmd *cobra.Command, args []string) {
			sim := index.BM25Legacy(Run.GetFloat64P("k1", "", 5), Run.GetFloat64P("b", "", 0.75))
			x.Check(tryout(cmd.OutOrStdout(), sim))
		},
	}
	Run.EnvPrefix = "TRYOUT_RUN"

	flags := Run.Cmd.Flags()
	flags.Float64("k1", 5, "k1 of the custom legacy BM25 similarity.")
	flags.Float64("b", 0.75, "b of the custom legacy BM25 similarity.")
}

func tryout(w io.Writer, custom index.Similarity) error {
	sa, err := index.Index(sampleDocs)
	if err != nil {
		return err
	}
	defer sa.Close()

	fmt.Fprintf(w, "(%d,)\n", sa.Shape())
	fmt.Fprintln(w, sa.TermDict())
	fmt.Fprint(w, sa.TermMatrix())
	if err := printEncodedPosns(w, sa.Posns()); err != nil {
		return err
	}
	fmt.Fprintf(w, "%T\n", sa)

	termID, ok := sa.TermDict().TermID(sampleTerm)
	if !ok {
		return x.Errorf("Term %q is missing", sampleTerm)
	}
	docIDs, tfs := sa.Posns().TermFreqs(termID)
	fmt.Fprintf(w, "doc_ids: %v\n", docIDs)
	fmt.Fprintf(w, "term frequencies: %v\n", tfs)

	query, err := sa.Tokenize(sampleQuery)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, sa.Match(query))
	fmt.Fprintln(w, sa.Score(query, nil))

	glog.V(1).Infof("Scoring %q with %s", sampleQuery, custom.Name())
	fmt.Fprintln(w, sa.Score(query, custom))
	return nil
}

func printEncodedPosns(w io.Writer, lists *posting.Lists) error {
	return lists.Iterate(func(l *posting.List) error {
		var rerr error
		l.Iterate(func(p *posting.Posting) bool {
			data, err := codec.MarshalPack(p.Posns)
			if err != nil {
				rerr = err
				return false
			}
			fmt.Fprintf(w, "term %d doc %d posns %v encoded %x\n",
				l.TermID, p.DocID, codec.Decode(p.Posns), data)
			return true
		})
		return rerr
	})
}

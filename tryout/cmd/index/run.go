/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hypermodeinc/searcharray/index"
	"github.com/hypermodeinc/searcharray/store"
	"github.com/hypermodeinc/searcharray/x"
)

// Index is the sub-command invoked when running "tryout index".
var Index x.SubCommand

type options struct {
	docsFile string
	dir      string
}

func init() {
	Index.Cmd = &cobra.Command{
		Use:   "index",
		Short: "Index a YAML list of documents into a store directory",
		Run: func(cmd *cobra.Command, args []string) {
			opt := options{
				docsFile: Index.GetStringP("docs", "f", "-"),
				dir:      Index.GetStringP("dir", "d", "t"),
			}
			x.Check(run(cmd.InOrStdin(), cmd.OutOrStdout(), opt))
		},
	}
	Index.EnvPrefix = "TRYOUT_INDEX"

	flags := Index.Cmd.Flags()
	flags.StringP("docs", "f", "-", "YAML file holding a list of documents. - reads stdin.")
	flags.StringP("dir", "d", "t", "Directory of the store to write.")
}

// readDocs parses a YAML sequence of strings.
func readDocs(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "while reading documents")
	}
	var docs []string
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.Wrap(err, "while parsing documents")
	}
	return docs, nil
}

func run(stdin io.Reader, w io.Writer, opt options) error {
	r := stdin
	if opt.docsFile != "-" {
		f, err := os.Open(opt.docsFile)
		if err != nil {
			return errors.Wrapf(err, "while opening %s", opt.docsFile)
		}
		defer f.Close()
		r = f
	}
	docs, err := readDocs(r)
	if err != nil {
		return err
	}
	glog.Infof("Read %d documents from %s", len(docs), opt.docsFile)

	sa, err := index.Index(docs)
	if err != nil {
		return err
	}
	defer sa.Close()

	st, err := store.Open(opt.dir)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(sa); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Indexed %s docs, %s terms, %s postings into %s (%s)\n",
		humanize.Comma(int64(sa.Shape())), humanize.Comma(int64(sa.TermDict().Len())),
		humanize.Comma(int64(sa.TermMatrix().NNZ())), opt.dir,
		humanize.Bytes(uint64(st.Size())))
	return err
}

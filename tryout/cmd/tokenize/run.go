/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tokenize

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hypermodeinc/searcharray/tok"
	"github.com/hypermodeinc/searcharray/x"
)

// Tokenize is the sub-command invoked when running "tryout tokenize".
var Tokenize x.SubCommand

func init() {
	Tokenize.Cmd = &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Print the tokens of the given text, or of every line of stdin",
		Run: func(cmd *cobra.Command, args []string) {
			name := Tokenize.GetStringP("tokenizer", "", x.Config.Tokenizer)
			if Tokenize.GetBoolP("positions", "p", false) {
				x.Check(printPositions(cmd.OutOrStdout(), name, strings.Join(args, " ")))
				return
			}
			t, ok := tok.GetTokenizer(name)
			x.AssertTruef(ok, "Invalid tokenizer %s", name)
			if len(args) > 0 {
				x.Check(printTokens(cmd.OutOrStdout(), t, strings.Join(args, " ")))
				return
			}
			x.Check(tokenizeLines(cmd.InOrStdin(), cmd.OutOrStdout(), t))
		},
	}
	Tokenize.EnvPrefix = "TRYOUT_TOKENIZE"

	flags := Tokenize.Cmd.Flags()
	flags.BoolP("positions", "p", false,
		"Print the analyzer token stream with positions and byte offsets.")
}

// printPositions runs text through the bleve analyzer of the same name and
// prints one token per line.
func printPositions(w io.Writer, name, text string) error {
	a, err := tok.Analyzer(name)
	if err != nil {
		return err
	}
	for _, t := range a.Analyze([]byte(text)) {
		if _, err := fmt.Fprintf(w, "%d\t%d:%d\t%q\n",
			t.Position, t.Start, t.End, t.Term); err != nil {
			return err
		}
	}
	return nil
}

func printTokens(w io.Writer, t tok.Tokenizer, text string) error {
	tokens, err := t.Tokens(text)
	if err != nil {
		return errors.Wrapf(err, "while tokenizing %q", text)
	}
	_, err = fmt.Fprintf(w, "%q\n", tokens)
	return err
}

func tokenizeLines(r io.Reader, w io.Writer, t tok.Tokenizer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := printTokens(w, t, scanner.Text()); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "while reading input")
}

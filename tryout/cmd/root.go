/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hypermodeinc/searcharray/tryout/cmd/index"
	"github.com/hypermodeinc/searcharray/tryout/cmd/run"
	"github.com/hypermodeinc/searcharray/tryout/cmd/search"
	"github.com/hypermodeinc/searcharray/tryout/cmd/tokenize"
	"github.com/hypermodeinc/searcharray/tryout/cmd/version"
	"github.com/hypermodeinc/searcharray/x"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tryout",
	Short: "Tryout: positional search arrays with BM25 scoring",
	Long: `
Tryout tokenizes documents with a whitespace and punctuation tokenizer, builds
a positional inverted index over them and scores phrase queries with BM25.
` + x.BuildDetails(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		x.Config.Tokenizer = rootConf.GetString("tokenizer")
		x.Config.PosnBlockSize = rootConf.GetInt("posn_block_size")
		x.Config.ScoreCacheSize = rootConf.GetInt64("score_cache_mb") << 20
		x.Init()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

var subcommands = []*x.SubCommand{
	&run.Run, &tokenize.Tokenize, &index.Index, &search.Search, &version.Version,
}

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	RootCmd.PersistentFlags().String("tokenizer", x.Config.Tokenizer,
		"Registered tokenizer used for documents and queries.")
	RootCmd.PersistentFlags().Int("posn_block_size", x.Config.PosnBlockSize,
		"Number of token positions per encoded block.")
	RootCmd.PersistentFlags().Int64("score_cache_mb", x.Config.ScoreCacheSize>>20,
		"Size of the score cache in MB. Zero disables it.")
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// Always set stderrthreshold=0. Don't let users set it themselves.
	x.Check(flag.Set("stderrthreshold", "0"))
	x.Check(flag.CommandLine.MarkDeprecated("stderrthreshold",
		"Tryout always sets this flag to 0. It can't be overwritten."))

	x.AddInit(x.RegisterViews)

	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		rootConf.SetConfigFile(cfg)
		x.Checkf(rootConf.ReadInConfig(), "reading config %s", cfg)
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Check(x.Wrapf(sc.Conf.ReadInConfig(), "reading config"))
		}
	})
}

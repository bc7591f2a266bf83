package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"endingspan/config"
	"endingspan/kanji"
	"endingspan/logger"
	"endingspan/tokenize"
)

func newAnnotateCmd() *cobra.Command {
	var (
		kanjidic   string
		dictionary string
	)
	cmd := &cobra.Command{
		Use:   "annotate TEXT...",
		Short: "Add ruby readings to plain Japanese text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("kanjidic") {
				cfg.Kanjidic = kanjidic
			}
			if cmd.Flags().Changed("dictionary") {
				cfg.Dictionary = dictionary
			}
			tk, err := newTokenizer(cmd, cfg)
			if err != nil {
				return err
			}
			out, err := tk.Annotate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&kanjidic, "kanjidic", "", "kanjidic2.xml used to split compound readings per kanji")
	cmd.Flags().StringVar(&dictionary, "dictionary", tokenize.DictIPA, "kagome dictionary (ipa or uni)")
	return cmd
}

func newTokenizer(cmd *cobra.Command, cfg config.Config) (*tokenize.Tokenizer, error) {
	opts := []tokenize.Option{tokenize.WithDictionary(cfg.Dictionary)}
	if cfg.Kanjidic != "" {
		d, err := kanji.LoadFile(cfg.Kanjidic)
		if err != nil {
			return nil, err
		}
		logger.Ctx(cmd.Context()).Debug("kanjidic loaded", "path", cfg.Kanjidic, "kanji", d.Len())
		opts = append(opts, tokenize.WithKanji(d))
	}
	return tokenize.New(opts...)
}

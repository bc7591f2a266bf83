package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLemmaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lemma TEXT",
		Short: "Print the dictionary form of a conjugated verb or adjective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tk, err := newTokenizer(cmd, cfg)
			if err != nil {
				return err
			}
			lemma, err := tk.Lemma(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), lemma)
			return err
		},
	}
}

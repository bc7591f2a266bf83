package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"endingspan/analyze"
	"endingspan/model"
)

func newMarkCmd() *cobra.Command {
	var withFurigana bool
	cmd := &cobra.Command{
		Use:   "mark BASE CONJUGATION",
		Short: "Wrap the ending of CONJUGATION that differs from BASE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := analyze.MarkPair(model.Pair{BaseForm: args[0], Conjugation: args[1]}, withFurigana)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Marked)
			return err
		},
	}
	cmd.Flags().BoolVar(&withFurigana, "furigana", false, "convert 漢[かん] bracket notation to ruby first")
	return cmd
}

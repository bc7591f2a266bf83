package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"endingspan/logger"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	lg := logger.New(os.Stderr)
	ctx = pslog.ContextWithLogger(ctx, lg)
	log.SetOutput(pslog.LogLogger(lg).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		lg.With("err", err).Error("endingspan command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "endingspan",
		Short:         "Highlight the inflected ending of Japanese conjugations",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")

	root.AddCommand(newMarkCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newAnnotateCmd())
	root.AddCommand(newLemmaCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

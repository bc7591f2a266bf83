package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"endingspan/analyze"
	"endingspan/config"
	"endingspan/ingest"
	"endingspan/logger"
)

func newBatchCmd() *cobra.Command {
	var (
		workers     int
		reportDir   string
		format      string
		furigana    bool
		asJSON      bool
		cleanReport bool
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Mark every pair in a YAML or TSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("report-dir") {
				cfg.ReportDir = reportDir
			}
			if flags.Changed("format") {
				cfg.Input.Format = format
			}
			if flags.Changed("furigana") {
				cfg.Furigana = furigana
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logger.Ctx(ctx)
			inFormat, err := ingest.ParseFormat(cfg.Input.Format)
			if err != nil {
				return err
			}
			pairs, err := ingest.Load(args[0], inFormat)
			if err != nil {
				return err
			}
			log.Debug("pairs loaded", "file", args[0], "count", len(pairs))

			report, err := analyze.Run(ctx, pairs, analyze.Options{Workers: cfg.Workers, Furigana: cfg.Furigana})
			if err != nil {
				return err
			}

			if cfg.ReportDir != "" {
				if cleanReport {
					if err := logger.InitLogs(cfg.ReportDir); err != nil {
						return fmt.Errorf("clean report dir: %w", err)
					}
				}
				name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + "_report"
				path, err := logger.LogJSON(cfg.ReportDir, name, report)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				log.Info("report written", "path", path)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(report)
			}
			for _, res := range report.Results {
				if _, err := fmt.Fprintln(out, res.Marked); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", analyze.DefaultWorkers, "number of concurrent workers")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write a JSON report into this directory")
	cmd.Flags().StringVar(&format, "format", "", "input format (yaml or tsv); guessed from the extension when empty")
	cmd.Flags().BoolVar(&furigana, "furigana", false, "convert 漢[かん] bracket notation to ruby first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&cleanReport, "clean-report-dir", false, "remove existing .json files from the report dir first")
	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

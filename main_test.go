package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"endingspan/analyze"
	"endingspan/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMarkCommand(t *testing.T) {
	out, err := execute(t, "mark", "見る", "見た")
	require.NoError(t, err)
	require.Equal(t, "見<span class=ending>た</span>\n", out)

	out, err = execute(t, "mark", "--furigana", "来[く]る", "来[き]ます")
	require.NoError(t, err)
	require.Equal(t, "<ruby>来<rt><span class=ending>き</span></rt></ruby><span class=ending>ます</span>\n", out)

	_, err = execute(t, "mark", "見る")
	require.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pairs.tsv")
	require.NoError(t, os.WriteFile(input, []byte("見る\t見た\n食べる\t食べない\n走る\t走る\n"), 0o644))

	out, err := execute(t, "batch", "--workers", "2", input)
	require.NoError(t, err)
	require.Equal(t, []string{
		"見<span class=ending>た</span>",
		"食べ<span class=ending>ない</span>",
		"走る",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestBatchCommandJSONAndReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "verbs.yaml")
	require.NoError(t, os.WriteFile(input, []byte("- base: 来[く]る\n  conjugation: 来[き]ます\n"), 0o644))
	reports := filepath.Join(dir, "reports")

	out, err := execute(t, "batch", "--furigana", "--json", "--report-dir", reports, input)
	require.NoError(t, err)

	var report analyze.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	require.Equal(t, model.ReadingContext, report.Results[0].Context)
	require.Equal(t, 1, report.Summary.ByContext[model.ReadingContext])

	_, err = os.Stat(filepath.Join(reports, "verbs_report.json"))
	require.NoError(t, err)
}

func TestBatchCommandUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pairs.list")
	require.NoError(t, os.WriteFile(input, []byte("見る\t見た\n"), 0o644))
	cfg := filepath.Join(dir, "endingspan.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 1\ninput:\n  format: tsv\n"), 0o644))

	out, err := execute(t, "batch", "--config", cfg, input)
	require.NoError(t, err)
	require.Equal(t, "見<span class=ending>た</span>\n", out)

	_, err = execute(t, "batch", input)
	require.Error(t, err)
}

func TestBatchCommandRejectsBadWorkers(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pairs.tsv")
	require.NoError(t, os.WriteFile(input, []byte("見る\t見た\n"), 0o644))
	_, err := execute(t, "batch", "--workers", "0", input)
	require.Error(t, err)
}

func TestAnnotateCommand(t *testing.T) {
	out, err := execute(t, "annotate", "食べる")
	require.NoError(t, err)
	require.Equal(t, "<ruby>食<rt>た</rt></ruby>べる\n", out)
}

func TestLemmaCommand(t *testing.T) {
	out, err := execute(t, "lemma", "食べなかった")
	require.NoError(t, err)
	require.Equal(t, "食べる\n", out)
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	require.Contains(t, out, "workers: 4")
	require.Contains(t, out, "dictionary: ipa")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "endingspan "))
}

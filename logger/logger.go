package logger

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/pslog"

	"endingspan/model"
)

// New builds a structured logger writing to w. Mode and level can still be
// overridden through the usual pslog environment variables.
func New(w io.Writer) pslog.Logger {
	return pslog.LoggerFromEnv(
		pslog.WithEnvWriter(w),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
}

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithPair annotates the logger with the pair id and label when present.
func WithPair(log pslog.Logger, p model.Pair) pslog.Logger {
	if p.ID != "" {
		log = log.With("pair", p.ID)
	}
	if p.Label != "" {
		log = log.With("label", p.Label)
	}
	return log
}

// InitLogs ensures the logs directory exists and removes any existing .json files
// so the program starts with a clean logs directory.
func InitLogs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		// ignore individual remove errors but continue trying to clean others
		_ = os.Remove(f)
	}
	return nil
}

// LogJSON writes v as pretty JSON to <dir>/<name>.json. It writes to a
// temporary file first and renames it so readers never see a partial file.
// The returned path is the final file.
func LogJSON(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	final := filepath.Join(dir, filepath.Base(name)+".json")
	tmp := final + ".tmp"
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return final, nil
}

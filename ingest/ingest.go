package ingest

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"endingspan/model"
)

// Format names an input file layout.
type Format string

const (
	// YAML is a list of {base, conjugation, label} mappings.
	YAML Format = "yaml"
	// TSV is one base<TAB>conjugation[<TAB>label] pair per line.
	TSV Format = "tsv"
)

var (
	// ErrEmptyPair is returned for a pair without a conjugation.
	ErrEmptyPair = errors.New("empty conjugation")
	// ErrUnknownFormat is returned when the input format cannot be determined.
	ErrUnknownFormat = errors.New("unknown input format")
)

// ParseFormat maps a format name to a Format. The empty name yields "".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "yaml", "yml":
		return YAML, nil
	case "tsv", "txt":
		return TSV, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil || f == "" {
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	return f, nil
}

// Load reads pairs from path. An empty format is derived from the extension.
func Load(path string, format Format) ([]model.Pair, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pairs, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// Read parses pairs from r and assigns an ID to every pair lacking one.
func Read(r io.Reader, format Format) ([]model.Pair, error) {
	var (
		pairs []model.Pair
		err   error
	)
	switch format {
	case YAML:
		pairs, err = readYAML(r)
	case TSV:
		pairs, err = readTSV(r)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	for i := range pairs {
		if pairs[i].ID == "" {
			pairs[i].ID = generateID()
		}
	}
	return pairs, nil
}

func readYAML(r io.Reader) ([]model.Pair, error) {
	var pairs []model.Pair
	if err := yaml.NewDecoder(r).Decode(&pairs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for i, p := range pairs {
		if p.Conjugation == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrEmptyPair)
		}
	}
	return pairs, nil
}

func readTSV(r io.Reader) ([]model.Pair, error) {
	var pairs []model.Pair
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 || fields[1] == "" {
			return nil, fmt.Errorf("line %d: %w", line, ErrEmptyPair)
		}
		p := model.Pair{BaseForm: fields[0], Conjugation: fields[1]}
		if len(fields) > 2 {
			p.Label = fields[2]
		}
		pairs = append(pairs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	return pairs, nil
}

// generateID creates a short random hex id. Falls back to a timestamp string on error.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

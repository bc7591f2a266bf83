package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"endingspan/analyze"
	"endingspan/ingest"
	"endingspan/tokenize"
)

// EnvPrefix prefixes environment overrides, e.g. ENDINGSPAN_WORKERS.
const EnvPrefix = "ENDINGSPAN"

// Config holds the CLI settings.
type Config struct {
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	ReportDir  string `mapstructure:"report_dir" yaml:"report_dir,omitempty"`
	Kanjidic   string `mapstructure:"kanjidic" yaml:"kanjidic,omitempty"`
	Dictionary string `mapstructure:"dictionary" yaml:"dictionary"`
	Furigana   bool   `mapstructure:"furigana" yaml:"furigana"`
	Input      Input  `mapstructure:"input" yaml:"input"`
}

// Input describes how batch files are read.
type Input struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:    analyze.DefaultWorkers,
		Dictionary: tokenize.DictIPA,
	}
}

// Load reads configuration from path, layered over the defaults and under
// ENDINGSPAN_* environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("report_dir", cfg.ReportDir)
	v.SetDefault("kanjidic", cfg.Kanjidic)
	v.SetDefault("dictionary", cfg.Dictionary)
	v.SetDefault("furigana", cfg.Furigana)
	v.SetDefault("input.format", cfg.Input.Format)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Dictionary {
	case tokenize.DictIPA, tokenize.DictUni:
	default:
		return fmt.Errorf("unsupported dictionary %q; expected %q or %q", c.Dictionary, tokenize.DictIPA, tokenize.DictUni)
	}
	if _, err := ingest.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	return nil
}

// YAML renders the effective configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

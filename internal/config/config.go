// Package config provides the configuration schema and loader for the rhyme
// commands.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SlogLevel maps l onto a [slog.Level]. Unknown levels map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds network and logging settings for the HTTP server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr" validate:"required"`

	// LogLevel controls verbosity of both commands.
	LogLevel LogLevel `yaml:"log_level"`

	// CORSOrigins lists the origins allowed to call the API. Empty allows all.
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`

	// MaxLines caps the number of lines accepted in one request.
	MaxLines int `yaml:"max_lines" validate:"gte=2"`
}

// LexiconConfig locates the pronouncing dictionary and morphology data.
type LexiconConfig struct {
	DataDir     string `yaml:"data_dir" validate:"required"`
	Dictionary  string `yaml:"dictionary" validate:"required"`
	Inflections string `yaml:"inflections" validate:"required"`
	Irregulars  string `yaml:"irregulars" validate:"required"`

	// CotCaughtMerger collapses AO into AA. A pointer so that an explicit
	// false survives default filling.
	CotCaughtMerger *bool `yaml:"cot_caught_merger"`
}

// MergerEnabled reports whether the cot–caught merger is on.
func (l LexiconConfig) MergerEnabled() bool {
	return l.CotCaughtMerger == nil || *l.CotCaughtMerger
}

// AnalysisConfig tunes the rhyme engine.
type AnalysisConfig struct {
	// MaxSyllables is the number of trailing vowel nuclei a line tail spans.
	MaxSyllables int `yaml:"max_syllables" validate:"gte=1,lte=6"`

	// Concurrency bounds parallel analyses in batch requests.
	Concurrency int `yaml:"concurrency" validate:"gte=1"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills zero values with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Server.MaxLines == 0 {
		cfg.Server.MaxLines = 200
	}
	if cfg.Lexicon.DataDir == "" {
		cfg.Lexicon.DataDir = "data"
	}
	if cfg.Lexicon.Dictionary == "" {
		cfg.Lexicon.Dictionary = "cmudict.dict"
	}
	if cfg.Lexicon.Inflections == "" {
		cfg.Lexicon.Inflections = "inflections.yaml"
	}
	if cfg.Lexicon.Irregulars == "" {
		cfg.Lexicon.Irregulars = "irregulars.yaml"
	}
	if cfg.Analysis.MaxSyllables == 0 {
		cfg.Analysis.MaxSyllables = 3
	}
	if cfg.Analysis.Concurrency == 0 {
		cfg.Analysis.Concurrency = 4
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versewright/rhyme/internal/config"
)

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, config.LogInfo, cfg.Server.LogLevel)
	assert.Equal(t, 3, cfg.Analysis.MaxSyllables)
	assert.True(t, cfg.Lexicon.MergerEnabled())
}

func TestLoadFromReader_Full(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: "127.0.0.1:9000"
  log_level: debug
  cors_origins: ["https://example.org"]
  max_lines: 40
lexicon:
  data_dir: /srv/lexicon
  dictionary: cmudict-0.7b
  cot_caught_merger: false
analysis:
  max_syllables: 2
  concurrency: 8
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	assert.Equal(t, config.LogDebug, cfg.Server.LogLevel)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 40, cfg.Server.MaxLines)
	assert.Equal(t, "/srv/lexicon", cfg.Lexicon.DataDir)
	assert.Equal(t, "cmudict-0.7b", cfg.Lexicon.Dictionary)
	assert.Equal(t, "inflections.yaml", cfg.Lexicon.Inflections)
	assert.False(t, cfg.Lexicon.MergerEnabled())
	assert.Equal(t, 2, cfg.Analysis.MaxSyllables)
	assert.Equal(t, 8, cfg.Analysis.Concurrency)
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("analysis:\n  max_syllabes: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_syllabes")
}

func TestValidate_Ranges(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: verbose
  max_lines: 1
analysis:
  max_syllables: 7
  concurrency: -1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "server.log_level")
	assert.Contains(t, msg, "MaxLines")
	assert.Contains(t, msg, "MaxSyllables")
	assert.Contains(t, msg, "Concurrency")
}

func TestValidate_EmptyCORSOrigin(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("server:\n  cors_origins: [\"\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORSOrigins")
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rhyme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  concurrency: 2\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Analysis.Concurrency)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

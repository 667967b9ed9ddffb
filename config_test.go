package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_readConfig(t *testing.T) {
	path := writeConfig(t, `
log: ranker.log
doc_root: /data/resumes
strategy: semantic
keyword_gap: false
filler_words_file: filler.yaml
gemini:
  model: text-embedding-004
  api_key: secret
`)

	cfg, err := readConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ranker.log", cfg.LogFile)
	assert.Equal(t, "/data/resumes", cfg.DocRoot)
	assert.Equal(t, StrategySemantic, cfg.Strategy)
	require.NotNil(t, cfg.KeywordGap)
	assert.False(t, *cfg.KeywordGap)
	require.NotNil(t, cfg.Gemini)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.Model)
	assert.Nil(t, cfg.OpenAI)
	assert.Equal(t, "gemini/text-embedding-004", modelName(cfg))

	// defaults survive partial files
	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, "resume_match_results.csv", cfg.Output)
	assert.Equal(t, 500, cfg.ReloadDebounceMs)
}

func Test_readConfig_Invalid(t *testing.T) {
	var cases = []string{
		"strategy: bm25",
		"transport: grpc",
		"reload_debounce_ms: -1",
		"strategy: [",
	}

	for _, c := range cases {
		_, err := readConfig(writeConfig(t, c))
		assert.Error(t, err, c)
	}

	_, err := readConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func Test_loadConfig_Defaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "onnx/all-MiniLM-L6-v2", modelName(cfg))

	_, err = loadConfig(missing, true)
	assert.Error(t, err)
}

func Test_newScorer(t *testing.T) {
	cfg := defaultConfig()

	s, err := newScorer(cfg, nil)
	require.NoError(t, err)
	assert.False(t, s.Layout().KeywordGap)

	cfg.Strategy = StrategySemantic
	s, err = newScorer(cfg, nil)
	require.NoError(t, err)
	assert.True(t, s.Layout().KeywordGap)

	cfg.Strategy = "unknown"
	_, err = newScorer(cfg, nil)
	assert.Error(t, err)
}

func Test_newLogger(t *testing.T) {
	cfg := defaultConfig()

	logger, closer, err := newLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
	assert.NoError(t, closer.Close())

	cfg.LogFile = filepath.Join(t.TempDir(), "ranker.log")
	logger, closer, err = newLogger(cfg)
	require.NoError(t, err)
	logger.Info("ranking", "resumes", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ranking"`)
	assert.Contains(t, string(data), `"resumes":3`)

	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "ranker.log")
	_, _, err = newLogger(cfg)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Detector.PairWindow)
	assert.Equal(t, 0.5, cfg.Detector.MinConfidence)
	assert.True(t, cfg.Report.Color)
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opqa.yaml")

	content := `
logging:
  level: debug
detector:
  pair_window: 5s
  min_confidence: 0.75
store:
  path: /tmp/opqa-test/suites.db
report:
  color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Detector.PairWindow)
	assert.Equal(t, 0.75, cfg.Detector.MinConfidence)
	assert.Equal(t, "/tmp/opqa-test/suites.db", cfg.Store.Path)
	assert.False(t, cfg.Report.Color)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("OPQA_DETECTOR_MIN_CONFIDENCE", "0.9")
	t.Setenv("OPQA_LOGGING_LEVEL", "error")

	dir := t.TempDir()
	path := filepath.Join(dir, "opqa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Environment wins over file and defaults.
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 0.9, cfg.Detector.MinConfidence)
}

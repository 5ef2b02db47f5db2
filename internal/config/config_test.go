package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "default config must validate: %v", res.Errors)
}

func TestDefaultConstants(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 90, cfg.Dedup.Threshold)
	assert.Equal(t, 20, cfg.Search.TopK)
	assert.Equal(t, 10, cfg.Search.MaxPerSource)
	assert.Equal(t, 5, cfg.Search.ConnectorTimeoutSeconds)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxPerSource = 0
	cfg.Dedup.Threshold = 150
	cfg.Inference.IdealProfile = "  "

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Len(t, res.Errors, 3)
}

func TestValidateWarnsWithoutInference(t *testing.T) {
	cfg := Default()
	cfg.Inference.BaseURL = ""

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.NotEmpty(t, res.Warnings)
	assert.Empty(t, out.Inference.BaseURL)
}

func TestValidateRequiresSomeSource(t *testing.T) {
	cfg := Default()
	cfg.Sources.YellowPages.Enabled = false
	cfg.Sources.Yelp.Enabled = false
	cfg.Sources.Manta.Enabled = false
	cfg.Dataset.Path = ""

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
}

func TestNormalizeTrimsBaseURL(t *testing.T) {
	cfg := Default()
	cfg.Inference.BaseURL = " http://localhost:8095/ "

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, "http://localhost:8095", out.Inference.BaseURL)
}

func TestEnsureUserConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// second call leaves the existing file alone
	require.NoError(t, os.WriteFile(path, []byte("dedup:\n  threshold: 85\n"), 0o644))
	_, err = EnsureUserConfig(dir)
	require.NoError(t, err)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 85, cfg.Dedup.Threshold)
}

func TestLoadAppliesDefaultsUnderPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  top_k: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 90, cfg.Dedup.Threshold, "unset fields keep defaults")
}

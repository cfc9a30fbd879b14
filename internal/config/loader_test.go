package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	l := NewLoader()
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Fusion.AutoProcessThreshold, cfg.Fusion.AutoProcessThreshold)
	assert.Equal(t, "spa", cfg.OCR.Language)
}

func TestLoaderLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expediente.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ocr:\n  language: eng\nfusion:\n  auto_process_threshold: 0.9\n"), 0o644))

	l := NewLoader()
	cfg, err := l.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.InDelta(t, 0.9, cfg.Fusion.AutoProcessThreshold, 1e-9)
}

func TestLoaderEnvOverride(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	t.Setenv("EXPEDIENTE_OCR_LANGUAGE", "fra")

	l := NewLoader()
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "fra", cfg.OCR.Language)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "expediente.yaml")

	l := NewLoader()
	require.NoError(t, l.GenerateDefaultConfigFile(path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadWithoutValidationSkipsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expediente.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  max_concurrent_expedientes: 0\n"), 0o644))

	l := NewLoader()
	cfg, err := l.LoadWithFileWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Pipeline.MaxConcurrentExpedientes)
}

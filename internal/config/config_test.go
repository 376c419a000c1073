package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/ppt2tw/internal/pathutil"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ppt2tw", cfg.App.Name)
	assert.Equal(t, "s2t", cfg.Convert.Mode)
	// 默认值与路径策略共用同一组常量，两边不会漂移
	assert.Equal(t, pathutil.DefaultMarker, cfg.Convert.Marker)
	assert.Equal(t, pathutil.DefaultExtension, cfg.Convert.Extension)
	assert.Equal(t, "./output", cfg.Convert.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PPT2TW_CONVERT_MODE", "s2tw")
	t.Setenv("PPT2TW_CONVERT_MARKER", "_zht")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s2tw", cfg.Convert.Mode)
	assert.Equal(t, "_zht", cfg.Convert.Marker)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Setenv("PPT2TW_CONVERT_MODE", "s2x")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadExtension(t *testing.T) {
	t.Setenv("PPT2TW_CONVERT_EXTENSION", "pptx")

	_, err := Load()
	assert.Error(t, err)
}

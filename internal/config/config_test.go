package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v, "/tmp/hanzitree")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults("/tmp/hanzitree"), *cfg)
}

func TestLoadRejectsInvertedLimits(t *testing.T) {
	v := viper.New()
	SetDefaults(v, t.TempDir())
	v.Set("search.default_limit", 100)
	v.Set("search.max_limit", 10)

	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLogMode(t *testing.T) {
	v := viper.New()
	SetDefaults(v, t.TempDir())
	v.Set("log.mode", "verbose")

	_, err := Load(v)
	assert.Error(t, err)
}

func TestSaveAndReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	want := Defaults(dir)
	want.Search.MaxLimit = 80
	require.NoError(t, Save(path, want))

	v := viper.New()
	SetDefaults(v, dir)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	got, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

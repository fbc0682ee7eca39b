package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("MDCOMBINE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	require.NotEmpty(t, dir)
	if runtime.GOOS != "windows" {
		assert.Equal(t, AppName, filepath.Base(dir))
	}
}

func TestDir_Overrides(t *testing.T) {
	t.Setenv("MDCOMBINE_CONFIG_HOME", "/custom/path")
	assert.Equal(t, "/custom/path", Dir())

	t.Setenv("MDCOMBINE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/config", AppName), Dir())
	assert.Equal(t, filepath.Join("/xdg/config", AppName, ConfigFileName), DefaultPath())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vault: /notes\npicker: dropdown\nopen: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/notes", cfg.Vault)
	assert.Equal(t, PickerDropdown, cfg.Picker)
	assert.False(t, cfg.Open)
	assert.Equal(t, "locale", cfg.Ordering, "unset keys keep their defaults")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("vault: [unterminated"), 0o644))
	_, err := Load(badYAML)
	assert.Error(t, err)

	badPicker := filepath.Join(dir, "picker.yaml")
	require.NoError(t, os.WriteFile(badPicker, []byte("picker: wheel\n"), 0o644))
	_, err = Load(badPicker)
	assert.ErrorContains(t, err, "picker")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg := Default()
	cfg.Picker = PickerNative
	cfg.Ordering = "binary"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
format_version = "0.1.0"
strategy = "segmented"
spill_threshold = 1024
`)
	require.NoError(t, LoadConfig(path))
	c := GetConfig()
	require.NotNil(t, c)
	assert.Equal(t, "segmented", c.Strategy)
	assert.EqualValues(t, 1024, c.SpillThreshold)
	assert.Equal(t, "", c.TempDir)
}

func TestLoadConfigDefaultsStrategy(t *testing.T) {
	path := writeConfigFile(t, `format_version = "0.1.0"`)
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "auto", GetConfig().Strategy)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", `format_version = "9.9.9"`},
		{"bad strategy", "format_version = \"0.1.0\"\nstrategy = \"rope\""},
		{"negative threshold", "format_version = \"0.1.0\"\nspill_threshold = -1"},
		{"not toml", `{"strategy": "auto"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			assert.Error(t, LoadConfig(path))
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
	assert.Error(t, LoadConfig(""))
}

func TestValidateConfigTempDir(t *testing.T) {
	dir := t.TempDir()
	c := &Config{FormatVersion: ConfigFormatVersion, TempDir: dir}
	require.NoError(t, ValidateConfig(c))

	c = &Config{FormatVersion: ConfigFormatVersion, TempDir: filepath.Join(dir, "missing")}
	assert.Error(t, ValidateConfig(c))
}

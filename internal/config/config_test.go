package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// testEnv isolates the global config under a temp XDG_CONFIG_HOME.
func testEnv(t *testing.T, extra ...string) (string, []string) {
	t.Helper()
	xdg := t.TempDir()
	return xdg, append([]string{"XDG_CONFIG_HOME=" + xdg}, extra...)
}

func TestLoad_Defaults(t *testing.T) {
	workDir := t.TempDir()
	_, env := testEnv(t, "USER=tester")

	cfg, sources, err := Load(workDir, "", Flags{}, env)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workDir, "dataBahanAjar.json"), cfg.DataFile)
	assert.Equal(t, filepath.Join(workDir, ".ajar"), cfg.StateDir)
	assert.Equal(t, "DO", cfg.OrderPrefix)
	assert.Equal(t, "id", cfg.Locale)
	assert.Equal(t, 200, cfg.DebounceMS)
	assert.Equal(t, "tester", cfg.Actor)
	assert.Empty(t, sources.Global)
	assert.Empty(t, sources.Project)
}

func TestLoad_Precedence(t *testing.T) {
	workDir := t.TempDir()
	xdg, env := testEnv(t)

	writeFile(t, filepath.Join(xdg, "ajar", "config.json"), `{
		// global settings
		"data_file": "global.json",
		"locale": "en",
		"debounce_ms": 50,
	}`)
	writeFile(t, filepath.Join(workDir, FileName), `{"data_file": "project.json", "order_prefix": "PO"}`)

	t.Run("project overrides global", func(t *testing.T) {
		cfg, sources, err := Load(workDir, "", Flags{}, env)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(workDir, "project.json"), cfg.DataFile)
		assert.Equal(t, "PO", cfg.OrderPrefix)
		assert.Equal(t, "en", cfg.Locale)
		assert.Equal(t, 50, cfg.DebounceMS)
		assert.Equal(t, filepath.Join(xdg, "ajar", "config.json"), sources.Global)
		assert.Equal(t, filepath.Join(workDir, FileName), sources.Project)
	})

	t.Run("env overrides files", func(t *testing.T) {
		cfg, _, err := Load(workDir, "", Flags{}, append(env, "AJAR_DATA=/srv/env.json"))
		require.NoError(t, err)
		assert.Equal(t, "/srv/env.json", cfg.DataFile)
	})

	t.Run("flags override env", func(t *testing.T) {
		cfg, _, err := Load(workDir, "", Flags{DataFile: "flag.json", StateDir: "/tmp/state"},
			append(env, "AJAR_DATA=/srv/env.json", "AJAR_STATE_DIR=/srv/state"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(workDir, "flag.json"), cfg.DataFile)
		assert.Equal(t, "/tmp/state", cfg.StateDir)
	})

	t.Run("explicit config replaces project file", func(t *testing.T) {
		writeFile(t, filepath.Join(workDir, "other.json"), `{"order_prefix": "XO"}`)
		cfg, sources, err := Load(workDir, "other.json", Flags{}, env)
		require.NoError(t, err)
		assert.Equal(t, "XO", cfg.OrderPrefix)
		assert.Equal(t, filepath.Join(workDir, "global.json"), cfg.DataFile)
		assert.Equal(t, filepath.Join(workDir, "other.json"), sources.Project)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"invalid JSONC", `{"data_file": `, errConfigInvalid},
		{"empty data_file", `{"data_file": ""}`, errEmptyField},
		{"bad prefix", `{"order_prefix": "D-O"}`, errOrderPrefix},
		{"bad locale", `{"locale": "not a locale!"}`, errLocale},
		{"negative debounce", `{"debounce_ms": -1}`, errDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			_, env := testEnv(t)
			writeFile(t, filepath.Join(workDir, FileName), tt.file)

			_, _, err := Load(workDir, "", Flags{}, env)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("explicit config not found", func(t *testing.T) {
		_, env := testEnv(t)
		_, _, err := Load(t.TempDir(), "missing.json", Flags{}, env)
		assert.ErrorIs(t, err, errConfigFileNotFound)
	})
}

func TestConfig_LocaleTag(t *testing.T) {
	assert.Equal(t, language.Indonesian, Config{Locale: "id"}.LocaleTag())
	assert.Equal(t, language.English, Config{Locale: "en"}.LocaleTag())
	assert.Equal(t, language.Indonesian, Config{Locale: "??"}.LocaleTag())
}

func TestFormat(t *testing.T) {
	out, err := Format(Default())
	require.NoError(t, err)
	assert.Contains(t, out, `"order_prefix": "DO"`)
	assert.NotContains(t, out, `"actor"`)
}

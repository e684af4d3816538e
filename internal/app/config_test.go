package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{WorkspaceRoot: "."})
		require.NoError(t, err)
		assert.Equal(t, ModeHierarchical, cfg.Mode)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
		assert.Equal(t, DefaultOutputFile, cfg.outputFile(""))
	})

	t.Run("flags win over environment", func(t *testing.T) {
		cfg, err := NewConfig(Config{
			WorkspaceRoot: ".",
			LogLevel:      "WARN",
			Env:           Environment{LogLevel: "debug", LogFormat: "json"},
		})
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing root", Config{}, "WorkspaceRoot is a required"},
		{"list without paths", Config{WorkspaceRoot: ".", Mode: ModeList}, "at least one manifest"},
		{"analyze with two paths", Config{WorkspaceRoot: ".", Mode: ModeAnalyze, Manifests: []string{"a", "b"}}, "exactly one manifest"},
		{"unknown mode", Config{WorkspaceRoot: ".", Mode: "parallel"}, "unknown mode"},
		{"bad level", Config{WorkspaceRoot: ".", LogLevel: "trace"}, "invalid log level"},
		{"bad format", Config{WorkspaceRoot: ".", Env: Environment{LogFormat: "xml"}}, "invalid log format"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConfig_OutputFilePrecedence(t *testing.T) {
	cfg := &Config{OutputFile: "flag.json", Env: Environment{OutputFile: "env.json"}}
	assert.Equal(t, "flag.json", cfg.outputFile("settings.json"))

	cfg.OutputFile = ""
	assert.Equal(t, "settings.json", cfg.outputFile("settings.json"))
	assert.Equal(t, "env.json", cfg.outputFile(""))
}

func TestEnvironmentFrom(t *testing.T) {
	env := map[string]string{
		EnvLegacyOutputFile: "legacy.json",
		EnvLogLevel:         "debug",
	}
	got := environmentFrom(func(k string) string { return env[k] })
	assert.Equal(t, Environment{OutputFile: "legacy.json", LogLevel: "debug"}, got)

	env[EnvOutputFile] = "new.json"
	got = environmentFrom(func(k string) string { return env[k] })
	assert.Equal(t, "new.json", got.OutputFile)
}

func TestLoadEnvironment(t *testing.T) {
	for _, k := range []string{EnvOutputFile, EnvLegacyOutputFile, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv(EnvLogLevel, "error")

	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("MVNGRAPH_OUTPUT_FILE=dot/graph.json\nMVNGRAPH_LOG_LEVEL=debug\n"), 0o644))

	env, err := LoadEnvironment(dotenv)
	require.NoError(t, err)
	assert.Equal(t, "dot/graph.json", env.OutputFile)
	assert.Equal(t, "error", env.LogLevel, "process environment wins over .env")

	env, err = LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "error", env.LogLevel)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"component":"mvngraph"`)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"model_path": "models/forest.yaml",
		"feature_names_path": "models/features.json",
		"port": 9090,
		"read_timeout": "5s",
		"write_timeout": 45,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "models/forest.yaml", cfg.ModelPath)
	assert.Equal(t, "models/features.json", cfg.FeatureNamesPath)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, Duration(5*time.Second), cfg.ReadTimeout)
	assert.Equal(t, Duration(45*time.Second), cfg.WriteTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{"read_timeout": "soon"}`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"zero value", Config{}, ""},
		{"negative port", Config{Port: -1}, "'port'"},
		{"port too large", Config{Port: 70000}, "'port'"},
		{"negative read timeout", Config{ReadTimeout: Duration(-time.Second)}, "'read_timeout'"},
		{"negative write timeout", Config{WriteTimeout: Duration(-time.Second)}, "'write_timeout'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{ModelPath: "custom.json", Port: 9000}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "custom.json", merged.ModelPath)
	assert.Equal(t, DefaultFeatureNamesPath, merged.FeatureNamesPath)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, Duration(DefaultReadTimeout), merged.ReadTimeout)
	assert.Equal(t, Duration(DefaultWriteTimeout), merged.WriteTimeout)
	assert.False(t, merged.Verbose)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{ModelPath: "custom.json"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, *cfg, merged)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MODEL_PATH", "/srv/model.yaml")
	t.Setenv("PORT", "8081")
	t.Setenv("VERBOSE", "true")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("WRITE_TIMEOUT", "not-a-duration")

	cfg := FromEnv(Defaults())

	assert.Equal(t, "/srv/model.yaml", cfg.ModelPath)
	assert.Equal(t, DefaultFeatureNamesPath, cfg.FeatureNamesPath)
	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, Duration(2*time.Second), cfg.ReadTimeout)
	assert.Equal(t, Duration(DefaultWriteTimeout), cfg.WriteTimeout)
}

func TestPrecedence_FileOverEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	file := &Config{Port: 9000}

	merged := file.MergeWithDefaults(FromEnv(Defaults()))

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultModelPath, merged.ModelPath)
}

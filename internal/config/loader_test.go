package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func noEnv(string) string { return "" }

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWith(fs, noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name)
	assert.Equal(t, "dev.rrap-is.com", cfg.Provena.Domain)
	assert.Equal(t, 12, cfg.Chat.MaxToolRounds)
	assert.Equal(t, []string{"create"}, cfg.Chat.ConfirmPrefixes)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"chat": {"max_tool_rounds": 20}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/provagent/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWith(fs, noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Chat.MaxToolRounds)           // Overridden
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name)   // Default
	assert.Equal(t, 100, cfg.Chat.ResearchRelatedLimit)   // Default
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configJSON := `{"model": {"name": "from-file"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/provagent/config.json": []byte(configJSON),
		},
	}
	env := func(key string) string {
		switch key {
		case "PROVAGENT_MODEL":
			return "from-env"
		case "REGISTRY_API":
			return "https://registry.example.org"
		}
		return ""
	}
	loader := NewLoaderWith(fs, env)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model.Name)
	assert.Equal(t, "https://registry.example.org", cfg.Provena.Endpoints.RegistryAPI)
}

func TestLoad_TokenFileDefaultsUnderConfigDir(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}
	loader := NewLoaderWith(fs, noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/provagent/tokens.json", cfg.Provena.TokenFile)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/provagent/config.json": []byte(`{not json`),
		},
	}
	loader := NewLoaderWith(fs, noEnv)

	_, err := loader.Load()

	assert.Error(t, err)
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWith(fs, noEnv)

	_, err := loader.Load()

	assert.Error(t, err)
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}
	loader := NewLoaderWith(fs, noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name)
	// No home dir means no token cache path to derive.
	assert.Empty(t, cfg.Provena.TokenFile)
}

func TestLoad_InvalidValues_FailValidation(t *testing.T) {
	configJSON := `{"chat": {"max_tool_rounds": 0}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/provagent/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWith(fs, noEnv)

	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tool_rounds")
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "provagent"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// TokenFile is the default device-flow token cache file name
	TokenFile = "tokens.json"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs  FileSystem
	env func(string) string
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, env: os.Getenv}
}

// NewLoaderWith creates a Loader with a custom filesystem and environment lookup
// (for testing)
func NewLoaderWith(fs FileSystem, env func(string) string) *Loader {
	return &Loader{fs: fs, env: env}
}

// Load reads configuration from ~/.config/provagent/config.json, merges it with
// defaults, then layers environment variables on top. Dotfile values override
// defaults; environment variables override both.
// Returns default config if the dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	if homeDir != "" {
		configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

		data, err := l.fs.ReadFile(configPath)
		switch {
		case err == nil:
			// Parse JSON directly into the default config struct so present
			// keys overwrite defaults (even if zero) while missing keys keep
			// their defaults.
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
			// Use defaults if file doesn't exist
		default:
			return nil, err
		}
	}

	l.applyEnv(cfg)

	if cfg.Provena.TokenFile == "" && homeDir != "" {
		cfg.Provena.TokenFile = filepath.Join(homeDir, ".config", ConfigDir, TokenFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv layers environment variables over the merged configuration.
// The variable names match the original deployment's conventions.
func (l *Loader) applyEnv(cfg *Config) {
	setIfPresent := func(key string, dst *string) {
		if v := l.env(key); v != "" {
			*dst = v
		}
	}

	setIfPresent("PROVAGENT_MODEL", &cfg.Model.Name)
	setIfPresent("PROVENA_DOMAIN", &cfg.Provena.Domain)
	setIfPresent("PROVENA_REALM", &cfg.Provena.Realm)
	setIfPresent("PROVENA_CLIENT_ID", &cfg.Provena.ClientID)
	setIfPresent("DATASTORE_API", &cfg.Provena.Endpoints.DatastoreAPI)
	setIfPresent("REGISTRY_API", &cfg.Provena.Endpoints.RegistryAPI)
	setIfPresent("PROV_API", &cfg.Provena.Endpoints.ProvAPI)
	setIfPresent("SEARCH_API", &cfg.Provena.Endpoints.SearchAPI)
	setIfPresent("HANDLE_SERVICE", &cfg.Provena.Endpoints.HandleAPI)
	setIfPresent("JOBS_SERVICE", &cfg.Provena.Endpoints.JobsAPI)
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}

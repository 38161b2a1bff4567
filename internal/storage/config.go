package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend            string   `mapstructure:"backend"`
	DataPath           string   `mapstructure:"dataPath"`
	Browser            string   `mapstructure:"browser"`
	FirefoxProfile     string   `mapstructure:"firefoxProfile"`
	ExportDir          string   `mapstructure:"exportDir"`
	CullExcludeDomains []string `mapstructure:"cullExcludeDomains"`
	LogLevel           string   `mapstructure:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendJSON,
		CullExcludeDomains: []string{"github.com", "gitlab.com"},
		LogLevel:           "warn",
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("ORGANITAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("dataPath", defaults.DataPath)
	v.SetDefault("browser", defaults.Browser)
	v.SetDefault("firefoxProfile", defaults.FirefoxProfile)
	v.SetDefault("exportDir", defaults.ExportDir)
	v.SetDefault("cullExcludeDomains", defaults.CullExcludeDomains)
	v.SetDefault("logLevel", defaults.LogLevel)
	return v
}

// LoadConfig reads config from the JSON file, with ORGANITAB_* environment
// overrides. Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
		// Non-fatal: defaults still apply if the file cannot be created
		_ = SaveConfig(path, nil)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Backend == "" {
		config.Backend = BackendJSON
	}
	return &config, nil
}

// SaveConfig writes config to the JSON file. A nil config writes the defaults.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	v := newViper(path)
	if config != nil {
		v.Set("backend", config.Backend)
		v.Set("dataPath", config.DataPath)
		v.Set("browser", config.Browser)
		v.Set("firefoxProfile", config.FirefoxProfile)
		v.Set("exportDir", config.ExportDir)
		v.Set("cullExcludeDomains", config.CullExcludeDomains)
		v.Set("logLevel", config.LogLevel)
	}
	return v.WriteConfigAs(path)
}

// DefaultConfigFilePath returns the default config path: ~/.config/organitab/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "organitab", "config.json"), nil
}

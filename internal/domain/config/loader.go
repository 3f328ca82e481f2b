package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration at path. An empty path searches the
// default locations; a missing file yields the default configuration.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		found, err := l.locate()
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ValidationError{
				Message:    "configuration file not found",
				Context:    path,
				Suggestion: "create it or drop the --config flag",
				Underlying: err,
			}
		}
		return nil, err
	}

	var file File
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = toml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, NewParseError(path, err)
	}

	return New(file)
}

// locate returns the first existing default config path, or "".
func (l *Loader) locate() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", nil
	}

	candidates := []string{
		filepath.Join(configDir, "upkeep", "upkeep.toml"),
		filepath.Join(configDir, "upkeep", "upkeep.yaml"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

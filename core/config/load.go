package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	out, err := LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
	if err != nil {
		return nil, err
	}
	out.configurationDir = path
	return out, nil
}

// LoadFs loads the configuration from the root of fs.
func LoadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}

	out.configFs = fs
	return &out, nil
}

// Initialize writes the default configuration into dir unless one already
// exists, then loads it.
func Initialize(dir string, logger *slog.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	switch exists, err := afero.Exists(fs, ConfigurationName); {
	case err != nil:
		return nil, err
	case exists:
		logger.Info("configuration already exists", slog.String("path", filepath.Join(dir, ConfigurationName)))
	default:
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Info("wrote default configuration", slog.String("path", filepath.Join(dir, ConfigurationName)))
	}

	return Load(dir)
}

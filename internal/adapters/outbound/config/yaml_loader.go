package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/repovet/repovet/internal/domain"
)

const fileName = ".repovet.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .repovet.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .repovet.yaml from dir. Returns the built-in defaults when the
// file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ScanConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ScanConfig{}, err
	}

	var cfg domain.ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ScanConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate the raw input before defaults paper over mistakes.
	if err := cfg.Validate(); err != nil {
		return domain.ScanConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg.WithDefaults(), nil
}

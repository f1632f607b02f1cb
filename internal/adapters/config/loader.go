// Package config provides the forge.yaml configuration loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file in the project
// root. The file is optional; most projects build fine on the defaults.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads forge.yaml from the project root, falling back to defaults
// when the file does not exist.
func (l *Loader) Load(root string) (*domain.Config, error) {
	path := filepath.Join(root, domain.ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path derives from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file forgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg := domain.DefaultConfig()
	if file.Compiler.C != "" {
		cfg.CC = file.Compiler.C
	}
	if file.Compiler.Cxx != "" {
		cfg.CXX = file.Compiler.Cxx
	}
	cfg.Flags = file.Flags
	cfg.Ignore = file.Ignore
	return cfg, nil
}

package ports

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader loads the project toolchain configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads forge.yaml from the project root. A missing file yields
	// the default configuration; a malformed one is an error.
	Load(root string) (*domain.Config, error)
}

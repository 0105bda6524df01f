package ports

import "go.trai.ch/esmbridge/internal/core/domain"

// ConfigLoader defines the interface for loading the session configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration file from the given working directory upwards.
	// Without a file it returns the defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}

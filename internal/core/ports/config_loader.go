package ports

import "go.trai.ch/cascade/internal/core/domain"

// SpecLoader defines the interface for loading declared notification specs.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SpecLoader interface {
	// Load reads the declarations at path and returns one TypeSpec per declared type,
	// in declaration order.
	Load(path string) ([]domain.TypeSpec, error)
}

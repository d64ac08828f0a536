package ports

import "go.trai.ch/cascade/internal/core/domain"

// Hasher defines the interface for fingerprinting declarations.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable hash of the spec's type name, properties and markers.
	Fingerprint(spec domain.TypeSpec) uint64
}

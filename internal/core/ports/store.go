package ports

import "go.trai.ch/cascade/internal/core/domain"

// CheckStore defines the interface for storing and retrieving check results.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CheckStore interface {
	// Get retrieves the last check record for a given type name.
	// Returns nil, nil if not found.
	Get(typeName string) (*domain.CheckRecord, error)

	// Put stores the check record.
	Put(record domain.CheckRecord) error
}

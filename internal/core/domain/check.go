package domain

import "time"

// CheckRecord is the persisted outcome of validating one declared type.
type CheckRecord struct {
	TypeName    string    `json:"type_name,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Valid       bool      `json:"valid"`
	Error       string    `json:"error,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

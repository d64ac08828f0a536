// Package fingerprint computes stable content hashes of declared type specs.
package fingerprint

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints TypeSpecs with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes the type name, then each property with its markers, in declaration order.
// Two specs with the same fingerprint build equivalent graphs.
func (h *Hasher) Fingerprint(spec domain.TypeSpec) uint64 {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(spec.Name)
	_, _ = hasher.Write([]byte{0}) // Separator

	for _, p := range spec.Properties {
		_, _ = hasher.WriteString(p.Name.String())
		_, _ = hasher.Write([]byte{0})

		for _, m := range p.Markers {
			_, _ = hasher.Write([]byte{1, byte(m.Direction)}) // Marker header
			for _, name := range m.Names {
				_, _ = hasher.WriteString(name.String())
				_, _ = hasher.Write([]byte{0})
			}
		}
		_, _ = hasher.Write([]byte{2}) // Property terminator
	}

	return hasher.Sum64()
}

// Format renders a fingerprint the way it is persisted.
func Format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

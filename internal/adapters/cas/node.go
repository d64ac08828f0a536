package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cascade/internal/core/ports"
)

// NodeID is the unique identifier for the check store Graft node.
const NodeID graft.ID = "adapter.check_store"

func init() {
	graft.Register(graft.Node[ports.CheckStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CheckStore, error) {
			store, err := NewStore(DefaultPath)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}

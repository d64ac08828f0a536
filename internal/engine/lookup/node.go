package lookup

import (
	"context"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/cascade/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cascade/internal/core/ports"
)

// NodeID is the unique identifier for the spec lookup cache Graft node.
const NodeID graft.ID = "engine.lookup"

func init() {
	graft.Register(graft.Node[*Cache[uint64]]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Cache[uint64], error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New[uint64](
				WithLogger[uint64](log),
				WithCoalescing(func(sum uint64) string { return strconv.FormatUint(sum, 16) }),
			), nil
		},
	})
}

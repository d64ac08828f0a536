package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cascade/internal/adapters/cas"         //nolint:depguard // Wired in app layer
	"go.trai.ch/cascade/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/cascade/internal/adapters/fingerprint" //nolint:depguard // Wired in app layer
	"go.trai.ch/cascade/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/cascade/internal/core/ports"
	"go.trai.ch/cascade/internal/engine/lookup"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lookup.NodeID,
			fingerprint.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.SpecLoader](ctx)
	if err != nil {
		return nil, err
	}

	graphs, err := graft.Dep[*lookup.Cache[uint64]](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CheckStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, graphs, hasher, store, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}

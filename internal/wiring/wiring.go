// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cascade/internal/adapters/cas"
	_ "go.trai.ch/cascade/internal/adapters/config"
	_ "go.trai.ch/cascade/internal/adapters/fingerprint"
	_ "go.trai.ch/cascade/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/cascade/internal/app"
	_ "go.trai.ch/cascade/internal/engine/lookup"
)

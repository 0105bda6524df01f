// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/esmbridge/internal/adapters/cjslexer"
	_ "go.trai.ch/esmbridge/internal/adapters/config"
	_ "go.trai.ch/esmbridge/internal/adapters/fs"
	_ "go.trai.ch/esmbridge/internal/adapters/graph"
	_ "go.trai.ch/esmbridge/internal/adapters/logger"
	_ "go.trai.ch/esmbridge/internal/adapters/noderesolve"
	_ "go.trai.ch/esmbridge/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/esmbridge/internal/app"
	_ "go.trai.ch/esmbridge/internal/engine/interop"
)

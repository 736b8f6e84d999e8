// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forma/internal/adapters/artifact"
	_ "go.trai.ch/forma/internal/adapters/config"
	_ "go.trai.ch/forma/internal/adapters/fingerprint"
	_ "go.trai.ch/forma/internal/adapters/logger"
	_ "go.trai.ch/forma/internal/adapters/meshkernel"
	_ "go.trai.ch/forma/internal/adapters/telemetry"
	_ "go.trai.ch/forma/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/forma/internal/app"
)

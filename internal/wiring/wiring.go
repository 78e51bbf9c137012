// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sgen/internal/adapters/archive"
	_ "go.trai.ch/sgen/internal/adapters/cache"
	_ "go.trai.ch/sgen/internal/adapters/config"
	_ "go.trai.ch/sgen/internal/adapters/fs"
	_ "go.trai.ch/sgen/internal/adapters/logger"
	_ "go.trai.ch/sgen/internal/adapters/protoc"
	_ "go.trai.ch/sgen/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/sgen/internal/app"
	_ "go.trai.ch/sgen/internal/engine/pipeline"
)

package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sgen/internal/adapters/archive"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/adapters/protoc"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sgen/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			archive.NodeID,
			fs.ScannerNodeID,
			fs.FingerprinterNodeID,
			fs.CollectorNodeID,
			protoc.NodeID,
			cache.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			unpacker, err := graft.Dep[ports.Unpacker](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			collector, err := graft.Dep[ports.Collector](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.RecordStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				unpacker,
				scanner,
				fingerprinter,
				compiler,
				collector,
				store,
				tracer,
				log,
			), nil
		},
	})
}

package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sgen/internal/core/ports"
)

const (
	// WalkerNodeID is the Graft node ID for the concrete walker shared by
	// the scanner and the collector.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ScannerNodeID is the Graft node ID for the schema scanner.
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	// CollectorNodeID is the Graft node ID for the output collector.
	CollectorNodeID graft.ID = "adapter.fs.collector"
	// FingerprinterNodeID is the Graft node ID for the fingerprinter.
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Scanner, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(walker), nil
		},
	})

	graft.Register(graft.Node[ports.Collector]{
		ID:        CollectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Collector, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(walker), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			return NewFingerprinter(), nil
		},
	})
}

package protoc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sgen/internal/adapters/logger"
	"go.trai.ch/sgen/internal/core/ports"
)

// NodeID is the unique identifier for the compiler invoker Graft node.
const NodeID graft.ID = "adapter.protoc"

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInvoker(log), nil
		},
	})
}

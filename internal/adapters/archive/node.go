package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sgen/internal/adapters/logger"
	"go.trai.ch/sgen/internal/core/ports"
)

// NodeID is the unique identifier for the unpacker Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.Unpacker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Unpacker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewUnpacker(log), nil
		},
	})
}

package graph

import (
	"context"
	"fmt"

	"github.com/grindlemire/graft"
	"go.trai.ch/esmbridge/internal/adapters/config"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/adapters/logger"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

// NodeID is the unique identifier for the dependency graph Graft node.
const NodeID graft.ID = "adapter.graph"

func init() {
	graft.Register(graft.Node[ports.DependencyGraph]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, fs.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DependencyGraph, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			g, err := Load(fsys, cfg.Root, WithLogger(log))
			if err != nil {
				return nil, err
			}
			if pnp, ok := g.(*PnPGraph); ok {
				log.Debug(fmt.Sprintf("loaded Plug'n'Play registry with %d package locations", pnp.Len()))
			} else {
				log.Debug("using node_modules layout under " + cfg.Root)
			}
			return g, nil
		},
	})
}

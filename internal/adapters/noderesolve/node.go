package noderesolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/esmbridge/internal/adapters/config"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

// NodeID is the unique identifier for the path resolver factory Graft node.
const NodeID graft.ID = "adapter.noderesolve"

func init() {
	graft.Register(graft.Node[ports.PathResolverFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, fs.NodeID},
		Run: func(ctx context.Context) (ports.PathResolverFactory, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(fsys, cfg.Extensions, domain.DefaultConditions), nil
		},
	})
}

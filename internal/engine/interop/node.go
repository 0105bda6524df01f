package interop

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/esmbridge/internal/adapters/cjslexer"
	"go.trai.ch/esmbridge/internal/adapters/config"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/adapters/graph"
	"go.trai.ch/esmbridge/internal/adapters/logger"
	"go.trai.ch/esmbridge/internal/adapters/noderesolve"
	"go.trai.ch/esmbridge/internal/adapters/telemetry"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

const (
	// SessionNodeID is the unique identifier for the interop session Graft node.
	SessionNodeID graft.ID = "engine.interop.session"
	// HooksNodeID is the unique identifier for the interop hooks Graft node.
	HooksNodeID graft.ID = "engine.interop.hooks"
)

func init() {
	graft.Register(graft.Node[*Session]{
		ID:        SessionNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			fs.NodeID,
			graph.NodeID,
			noderesolve.NodeID,
			cjslexer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Session, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			g, err := graft.Dep[ports.DependencyGraph](ctx)
			if err != nil {
				return nil, err
			}
			resolvers, err := graft.Dep[ports.PathResolverFactory](ctx)
			if err != nil {
				return nil, err
			}
			analyzer, err := graft.Dep[ports.ExportAnalyzer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSession(cfg, fsys, g, resolvers, analyzer, log)
		},
	})

	graft.Register(graft.Node[*Hooks]{
		ID:        HooksNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SessionNodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Hooks, error) {
			s, err := graft.Dep[*Session](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewHooks(s, tracer), nil
		},
	})
}

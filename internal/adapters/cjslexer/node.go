package cjslexer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/esmbridge/internal/core/ports"
)

// NodeID is the unique identifier for the export analyzer Graft node.
const NodeID graft.ID = "adapter.cjslexer"

func init() {
	graft.Register(graft.Node[ports.ExportAnalyzer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExportAnalyzer, error) {
			return New(), nil
		},
	})
}

package ports

import (
	"context"

	"go.trai.ch/esmbridge/internal/core/domain"
)

// ExportAnalyzer statically enumerates the export names of legacy module source.
//
//go:generate mockgen -source=export_analyzer.go -destination=mocks/mock_export_analyzer.go -package=mocks
type ExportAnalyzer interface {
	// Init prepares the analyzer. It must complete before Exports is called and is safe
	// to call more than once.
	Init(ctx context.Context) error

	// Exports returns the names the source assigns to its export namespace.
	// It never executes the source; malformed input yields a partial set.
	Exports(source []byte) domain.ExportSet
}

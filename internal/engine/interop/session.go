// Package interop implements the module-interop layer: graph-constrained resolution,
// format classification and export synthesis for legacy modules.
package interop

import (
	"context"
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Session is the per-process state shared by the resolver, the classifier and the
// synthesizer. Every cache only grows, and every value stored under a key is derived
// deterministically, so concurrent writers of the same key are harmless.
type Session struct {
	cfg       *domain.Config
	fs        ports.FileSystem
	graph     ports.DependencyGraph
	resolvers ports.PathResolverFactory
	analyzer  ports.ExportAnalyzer
	logger    ports.Logger

	mu          sync.RWMutex
	moduleTypes map[domain.ModulePath]domain.Format
	realModules map[domain.ModulePath]struct{}
	exportSets  map[uint64]domain.ExportSet

	resolverCache *lru.Cache[string, ports.PathResolver]

	analyzerOnce  sync.Once
	analyzerReady chan struct{}
	analyzerErr   error
}

// NewSession creates a Session. All reads go through fsys, which should cache.
func NewSession(
	cfg *domain.Config,
	fsys ports.FileSystem,
	graph ports.DependencyGraph,
	resolvers ports.PathResolverFactory,
	analyzer ports.ExportAnalyzer,
	logger ports.Logger,
) (*Session, error) {
	size := cfg.ResolverCacheSize
	if size < 1 {
		size = domain.DefaultResolverCacheSize
	}
	cache, err := lru.New[string, ports.PathResolver](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create resolver cache")
	}

	return &Session{
		cfg:           cfg,
		fs:            fsys,
		graph:         graph,
		resolvers:     resolvers,
		analyzer:      analyzer,
		logger:        logger,
		moduleTypes:   make(map[domain.ModulePath]domain.Format),
		realModules:   make(map[domain.ModulePath]struct{}),
		exportSets:    make(map[uint64]domain.ExportSet),
		resolverCache: cache,
		analyzerReady: make(chan struct{}),
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() *domain.Config {
	return s.cfg
}

func (s *Session) moduleType(p domain.ModulePath) (domain.Format, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.moduleTypes[p]
	return f, ok
}

// storeModuleType memoizes f under every given path.
func (s *Session) storeModuleType(f domain.Format, paths ...domain.ModulePath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		s.moduleTypes[p] = f
	}
}

// IsRealModule reports whether path was classified as a native modern module.
func (s *Session) IsRealModule(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.realModules[domain.NewModulePath(path)]
	return ok
}

func (s *Session) markRealModule(p domain.ModulePath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.realModules[p] = struct{}{}
}

// resolverFor returns the path resolver for an ordered condition list.
// The default list always maps to the shared resolver.
func (s *Session) resolverFor(conditions []string) ports.PathResolver {
	if domain.IsDefaultConditions(conditions) {
		return s.resolvers.Default()
	}
	key := domain.ResolverKey(conditions)
	if r, ok := s.resolverCache.Get(key); ok {
		return r
	}

	s.logger.Debug("building resolver for conditions " + domain.ConditionKey(conditions))
	r := s.resolvers.New(conditions)
	s.resolverCache.Add(key, r)
	return r
}

// waitAnalyzer blocks until the export analyzer is initialized. The first caller starts
// the initialization; later callers wait on the same signal.
func (s *Session) waitAnalyzer(ctx context.Context) error {
	s.analyzerOnce.Do(func() {
		initCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.analyzer.Init(initCtx); err != nil {
				s.analyzerErr = errors.Join(domain.ErrAnalyzerInitFailed, err)
			}
			close(s.analyzerReady)
		}()
	})

	select {
	case <-s.analyzerReady:
		return s.analyzerErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// exportsOf returns the export set of source, memoized by content fingerprint.
func (s *Session) exportsOf(source []byte) domain.ExportSet {
	key := xxhash.Sum64(source)

	s.mu.RLock()
	set, ok := s.exportSets[key]
	s.mu.RUnlock()
	if ok {
		return set
	}

	set = s.analyzer.Exports(source)

	s.mu.Lock()
	s.exportSets[key] = set
	s.mu.Unlock()
	return set
}

// readSource reads a module source through the session filesystem.
func (s *Session) readSource(path string) ([]byte, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSourceReadFailed, err), "path", path)
	}
	return data, nil
}

package fs

import (
	iofs "io/fs"
	"sync"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var _ ports.FileSystem = (*CachedFS)(nil)

type statResult struct {
	info iofs.FileInfo
	err  error
}

type readResult struct {
	data []byte
	err  error
}

// CachedFS memoizes the results of another FileSystem for the lifetime of the process.
// Failures are cached as well. Concurrent first reads of the same path share one
// underlying call. Returned byte slices are shared and must not be modified.
type CachedFS struct {
	base  ports.FileSystem
	group singleflight.Group

	mu    sync.RWMutex
	stats map[domain.ModulePath]statResult
	reads map[domain.ModulePath]readResult
}

// NewCachedFS wraps base.
func NewCachedFS(base ports.FileSystem) *CachedFS {
	return &CachedFS{
		base:  base,
		stats: make(map[domain.ModulePath]statResult),
		reads: make(map[domain.ModulePath]readResult),
	}
}

// Stat returns the cached file info for path.
func (c *CachedFS) Stat(path string) (iofs.FileInfo, error) {
	key := domain.NewModulePath(path)

	c.mu.RLock()
	res, ok := c.stats[key]
	c.mu.RUnlock()
	if ok {
		return res.info, res.err
	}

	v, _, _ := c.group.Do("stat\x00"+path, func() (any, error) {
		c.mu.RLock()
		r, ok := c.stats[key]
		c.mu.RUnlock()
		if ok {
			return r, nil
		}

		info, err := c.base.Stat(path)
		r = statResult{info: info, err: err}

		c.mu.Lock()
		c.stats[key] = r
		c.mu.Unlock()
		return r, nil
	})

	r, _ := v.(statResult)
	return r.info, r.err
}

// ReadFile returns the cached content of path.
func (c *CachedFS) ReadFile(path string) ([]byte, error) {
	key := domain.NewModulePath(path)

	c.mu.RLock()
	res, ok := c.reads[key]
	c.mu.RUnlock()
	if ok {
		return res.data, res.err
	}

	v, _, _ := c.group.Do("read\x00"+path, func() (any, error) {
		c.mu.RLock()
		r, ok := c.reads[key]
		c.mu.RUnlock()
		if ok {
			return r, nil
		}

		data, err := c.base.ReadFile(path)
		r = readResult{data: data, err: err}

		c.mu.Lock()
		c.reads[key] = r
		c.mu.Unlock()
		return r, nil
	})

	r, _ := v.(readResult)
	return r.data, r.err
}

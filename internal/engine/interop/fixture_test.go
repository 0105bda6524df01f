package interop_test

import (
	"context"
	iofs "io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.trai.ch/esmbridge/internal/adapters/cjslexer"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/adapters/graph"
	"go.trai.ch/esmbridge/internal/adapters/noderesolve"
	"go.trai.ch/esmbridge/internal/adapters/telemetry"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/esmbridge/internal/core/ports/mocks"
	"go.trai.ch/esmbridge/internal/engine/interop"
	"go.uber.org/mock/gomock"
)

const lodashGet = `function get(object, path, defaultValue) {
  var result = object == null ? undefined : baseGet(object, path);
  return result === undefined ? defaultValue : result;
}

exports.get = get;
`

// projectFS is mounted at "/" so that packages above the project root exist.
func projectFS() fstest.MapFS {
	return fstest.MapFS{
		"project/package.json":   {Data: []byte(`{"name": "app", "type": "module"}`)},
		"project/src/main.js":    {Data: []byte(`import get from "lodash/get";`)},
		"project/src/local.mjs":  {Data: []byte("export const local = true;\n")},
		"project/src/legacy.cjs": {Data: []byte("exports.foo = 1;\nexports.bar = 2;\n")},
		"project/src/data.json":  {Data: []byte(`{"a": 1}`)},
		"project/src/style.css":  {Data: []byte(`body {}`)},

		"project/node_modules/lodash/package.json": {Data: []byte(`{"name": "lodash", "version": "4.17.21"}`)},
		"project/node_modules/lodash/get.js":       {Data: []byte(lodashGet)},
		"project/node_modules/lodash/lib/deep.js":  {Data: []byte("module.exports = { deep: true };\n")},

		"project/node_modules/typed/package.json": {Data: []byte(`{"name": "typed", "type": "module"}`)},
		"project/node_modules/typed/index.js":     {Data: []byte("export default 1;\n")},

		"project/node_modules/odd/package.json": {Data: []byte(`{"name": "odd", "type": "esm"}`)},
		"project/node_modules/odd/index.js":     {Data: []byte("exports.odd = true;\n")},

		"project/node_modules/orphan/lib/x.js": {Data: []byte("exports.x = 1;\n")},

		"node_modules/left-pad/package.json": {Data: []byte(`{"name": "left-pad"}`)},
		"node_modules/left-pad/index.js":     {Data: []byte("module.exports = leftPad;\n")},

		"a/b/c/d.js": {Data: []byte("exports.d = 1;\n")},
	}
}

// readCounter counts reads per path.
type readCounter struct {
	base ports.FileSystem

	mu    sync.Mutex
	reads map[string]int
}

func newReadCounter(base ports.FileSystem) *readCounter {
	return &readCounter{base: base, reads: make(map[string]int)}
}

func (c *readCounter) Stat(path string) (iofs.FileInfo, error) {
	return c.base.Stat(path)
}

func (c *readCounter) ReadFile(path string) ([]byte, error) {
	c.mu.Lock()
	c.reads[path]++
	c.mu.Unlock()
	return c.base.ReadFile(path)
}

func (c *readCounter) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads[path]
}

func (c *readCounter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.reads {
		n += v
	}
	return n
}

type env struct {
	cfg     *domain.Config
	fs      *readCounter
	session *interop.Session
	hooks   *interop.Hooks
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func newEnv(t *testing.T, mutate func(*domain.Config)) *env {
	t.Helper()

	cfg := domain.DefaultConfig("/project")
	if mutate != nil {
		mutate(cfg)
	}

	counter := newReadCounter(fs.NewMapFSAdapter("/", projectFS()))
	g, err := graph.Load(counter, cfg.Root)
	require.NoError(t, err)

	s, err := interop.NewSession(
		cfg,
		counter,
		g,
		noderesolve.NewFactory(counter, cfg.Extensions, domain.DefaultConditions),
		cjslexer.New(),
		quietLogger(t),
	)
	require.NoError(t, err)

	return &env{
		cfg:     cfg,
		fs:      counter,
		session: s,
		hooks:   interop.NewHooks(s, telemetry.NewNoOpTracer()),
	}
}

// hostDefaults are stand-ins for the host's own hooks; they fail the test when called
// unless the test expects delegation.
type hostDefaults struct {
	resolved   []string
	classified []string
	sourced    []string
}

func (h *hostDefaults) resolve(_ context.Context, specifier string, _ domain.ResolveContext) (domain.ResolveResult, error) {
	h.resolved = append(h.resolved, specifier)
	return domain.ResolveResult{URL: "host:" + specifier}, nil
}

func (h *hostDefaults) classify(_ context.Context, url string, _ domain.FormatContext) (domain.FormatResult, error) {
	h.classified = append(h.classified, url)
	return domain.FormatResult{Format: "host"}, nil
}

func (h *hostDefaults) source(_ context.Context, url string, _ domain.SourceContext) (domain.SourceResult, error) {
	h.sourced = append(h.sourced, url)
	return domain.SourceResult{Source: []byte("host source")}, nil
}

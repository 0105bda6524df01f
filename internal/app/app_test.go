package app_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/esmbridge/internal/adapters/cjslexer"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/adapters/graph"
	"go.trai.ch/esmbridge/internal/adapters/noderesolve"
	"go.trai.ch/esmbridge/internal/adapters/telemetry"
	"go.trai.ch/esmbridge/internal/app"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports/mocks"
	"go.trai.ch/esmbridge/internal/engine/interop"
	"go.uber.org/mock/gomock"
)

func projectFS() fstest.MapFS {
	return fstest.MapFS{
		"project/package.json":  {Data: []byte(`{"name": "app", "type": "module"}`)},
		"project/src/main.js":   {Data: []byte(`import {get} from "lodash/get";`)},
		"project/src/data.json": {Data: []byte(`{"a": 1}`)},

		"project/node_modules/lodash/package.json": {Data: []byte(`{"name": "lodash"}`)},
		"project/node_modules/lodash/get.js":       {Data: []byte("exports.get = function get() {};\n")},
	}
}

func newApp(t *testing.T, mutate func(*domain.Config)) (*app.App, *mocks.MockLogger) {
	t.Helper()

	cfg := domain.DefaultConfig("/project")
	if mutate != nil {
		mutate(cfg)
	}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	fsys := fs.NewMapFSAdapter("/", projectFS())
	g, err := graph.Load(fsys, cfg.Root)
	require.NoError(t, err)

	s, err := interop.NewSession(
		cfg,
		fsys,
		g,
		noderesolve.NewFactory(fsys, cfg.Extensions, domain.DefaultConditions),
		cjslexer.New(),
		log,
	)
	require.NoError(t, err)

	return app.New(interop.NewHooks(s, telemetry.NewNoOpTracer()), fsys, log, cfg), log
}

func TestApp_Resolve(t *testing.T) {
	a, _ := newApp(t, nil)

	tests := []struct {
		name      string
		specifier string
		opts      app.ResolveOptions
		want      string
	}{
		{"bare from parent path", "lodash/get", app.ResolveOptions{ParentURL: "src/main.js"}, "file:///project/node_modules/lodash/get.js"},
		{"relative from working directory", "./src/main.js", app.ResolveOptions{}, "file:///project/src/main.js"},
		{"parent url", "./data.json", app.ResolveOptions{ParentURL: "file:///project/src/main.js"}, "file:///project/src/data.json"},
		{"builtin", "fs", app.ResolveOptions{}, "node:fs"},
		{"prefixed builtin", "node:path", app.ResolveOptions{}, "node:path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Resolve(t.Context(), tt.specifier, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.URL)
		})
	}
}

func TestApp_Resolve_UnsupportedURL(t *testing.T) {
	a, _ := newApp(t, nil)

	_, err := a.Resolve(t.Context(), "https://example.com/x.js", app.ResolveOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedURL))
}

func TestApp_Format(t *testing.T) {
	a, _ := newApp(t, func(cfg *domain.Config) { cfg.JSONModules = true })

	tests := []struct {
		target string
		want   domain.Format
	}{
		{"src/main.js", domain.FormatModern},
		{"/project/node_modules/lodash/get.js", domain.FormatLegacy},
		{"file:///project/src/data.json", domain.FormatJSON},
		{"node:fs", domain.FormatBuiltin},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			res, err := a.Format(t.Context(), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Format)
		})
	}
}

func TestApp_Source(t *testing.T) {
	a, _ := newApp(t, func(cfg *domain.Config) { cfg.JSONModules = true })

	t.Run("modern module verbatim", func(t *testing.T) {
		res, err := a.Source(t.Context(), "src/main.js")
		require.NoError(t, err)
		assert.Equal(t, `import {get} from "lodash/get";`, string(res.Source))
	})

	t.Run("structured content from host", func(t *testing.T) {
		res, err := a.Source(t.Context(), "src/data.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a": 1}`, string(res.Source))
	})

	t.Run("builtin has no source", func(t *testing.T) {
		_, err := a.Source(t.Context(), "node:fs")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedURL))
	})
}

func TestApp_Load(t *testing.T) {
	a, _ := newApp(t, nil)

	res, err := a.Load(t.Context(), "lodash/get", app.ResolveOptions{ParentURL: "/project/src/main.js"})
	require.NoError(t, err)

	assert.Equal(t, "lodash/get", res.Specifier)
	assert.Equal(t, "file:///project/node_modules/lodash/get.js", res.URL)
	assert.Equal(t, domain.FormatLegacy, res.Format)
	assert.Contains(t, res.Source, `export {__cjs_export_0 as get};`)
	assert.Contains(t, res.Source, `export default cjs;`)
}

func TestApp_Load_Builtin(t *testing.T) {
	a, _ := newApp(t, nil)

	res, err := a.Load(t.Context(), "fs", app.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatBuiltin, res.Format)
	assert.Empty(t, res.Source)
}

func TestApp_Check(t *testing.T) {
	a, _ := newApp(t, nil)

	specifiers := []string{"lodash/get", "missing", "fs", "./src/main.js"}
	results, err := a.Check(t.Context(), specifiers, app.ResolveOptions{})
	require.ErrorIs(t, err, domain.ErrCheckFailed)
	require.Len(t, results, len(specifiers))

	for i, r := range results {
		assert.Equal(t, specifiers[i], r.Specifier)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, domain.FormatLegacy, results[0].Format)
	assert.Positive(t, results[0].Bytes)

	require.Error(t, results[1].Err)
	assert.True(t, errors.Is(results[1].Err, domain.ErrNotFound))

	assert.NoError(t, results[2].Err)
	assert.Equal(t, domain.FormatBuiltin, results[2].Format)

	assert.NoError(t, results[3].Err)
	assert.Equal(t, domain.FormatModern, results[3].Format)
}

func TestApp_Check_AllPass(t *testing.T) {
	a, _ := newApp(t, nil)

	results, err := a.Check(t.Context(), []string{"fs", "lodash/get"}, app.ResolveOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestApp_Check_NoSpecifiers(t *testing.T) {
	a, _ := newApp(t, nil)

	_, err := a.Check(t.Context(), nil, app.ResolveOptions{})
	require.ErrorIs(t, err, domain.ErrNoSpecifiers)
}

type modeLogger struct {
	*mocks.MockLogger
	json, verbose bool
	root          string
}

func (l *modeLogger) SetJSON(enable bool)    { l.json = enable }
func (l *modeLogger) SetVerbose(enable bool) { l.verbose = enable }
func (l *modeLogger) SetRoot(root string)    { l.root = root }

func TestApp_Configure(t *testing.T) {
	cfg := domain.DefaultConfig("/project")
	cfg.Verbose = true

	log := &modeLogger{MockLogger: mocks.NewMockLogger(gomock.NewController(t))}
	a := app.New(nil, nil, log, cfg)

	assert.False(t, a.Configure(false, false))
	assert.False(t, log.json)
	assert.True(t, log.verbose)
	assert.Equal(t, "/project", log.root)

	assert.True(t, a.Configure(true, false))
	assert.True(t, log.json)
}

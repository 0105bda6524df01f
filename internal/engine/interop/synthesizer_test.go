package interop_test

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/esmbridge/internal/adapters/fs"
	"go.trai.ch/esmbridge/internal/adapters/noderesolve"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports/mocks"
	"go.trai.ch/esmbridge/internal/engine/interop"
	"go.uber.org/mock/gomock"
)

func TestGetSource_LodashGet(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)
	ctx := context.Background()

	resolved, err := e.hooks.Resolve(ctx, "lodash/get", domain.ResolveContext{
		ParentURL:  mainURL,
		Conditions: []string{"node", "import"},
	}, nil)
	require.NoError(t, err)

	format, err := e.hooks.ClassifyFormat(ctx, resolved.URL, domain.FormatContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatLegacy, format.Format)

	src, err := e.hooks.GetSource(ctx, resolved.URL, domain.SourceContext{Format: format.Format}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(src.Source), "export default cjs;")
	assert.Equal(t, 1, strings.Count(string(src.Source), "export {"))

	g := goldie.New(t)
	g.Assert(t, "lodash_get", src.Source)
}

func TestGetSource_LocalModuleVerbatim(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)
	ctx := context.Background()

	resolved, err := e.hooks.Resolve(ctx, "./local.mjs", domain.ResolveContext{ParentURL: mainURL}, nil)
	require.NoError(t, err)

	format, err := e.hooks.ClassifyFormat(ctx, resolved.URL, domain.FormatContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatModern, format.Format)

	src, err := e.hooks.GetSource(ctx, resolved.URL, domain.SourceContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "export const local = true;\n", string(src.Source))
}

func TestGetSource_ClassifiesUnseenPaths(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	// Never classified before: the typed package is modern, so its source is returned as is.
	src, err := e.hooks.GetSource(context.Background(), "file:///project/node_modules/typed/index.js", domain.SourceContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "export default 1;\n", string(src.Source))
	assert.True(t, e.session.IsRealModule("/project/node_modules/typed/index.js"))
}

func TestGetSource_ByteIdentical(t *testing.T) {
	t.Parallel()

	url := "file:///project/src/legacy.cjs"

	first, err := newEnv(t, nil).hooks.GetSource(context.Background(), url, domain.SourceContext{}, nil)
	require.NoError(t, err)

	e := newEnv(t, nil)
	for range 3 {
		again, err := e.hooks.GetSource(context.Background(), url, domain.SourceContext{}, nil)
		require.NoError(t, err)
		assert.Equal(t, first.Source, again.Source)
	}
}

func TestGetSource_Delegates(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"node:fs", "file:///project/src/data.json"} {
		e := newEnv(t, nil)
		host := &hostDefaults{}

		src, err := e.hooks.GetSource(context.Background(), url, domain.SourceContext{}, host.source)
		require.NoError(t, err)
		assert.Equal(t, "host source", string(src.Source))
		assert.Equal(t, []string{url}, host.sourced)
	}
}

func TestGetSource_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := newEnv(t, nil).hooks.GetSource(context.Background(), "file:///project/src/gone.cjs", domain.SourceContext{}, nil)
		assert.ErrorIs(t, err, domain.ErrSourceReadFailed)
	})

	t.Run("undeterminable format", func(t *testing.T) {
		t.Parallel()
		_, err := newEnv(t, nil).hooks.GetSource(context.Background(), "file:///a/b/c/d.js", domain.SourceContext{}, nil)
		assert.ErrorIs(t, err, domain.ErrUndeterminableFormat)
	})
}

// mockHost evaluates a synthesized wrapper the way a module host would, with the
// legacy namespaces given up front.
type mockHost struct {
	namespaces map[string]map[string]any
	required   []string
}

var (
	requireLine = regexp.MustCompile(`^const cjs = __cjs_createRequire\(import\.meta\.url\)\((".*")\);$`)
	bindingLine = regexp.MustCompile(`^const (\w+) = cjs\[(".*")\];$`)
	exportLine  = regexp.MustCompile(`^export \{(\w+) as (.+)\};$`)
)

func (h *mockHost) evaluate(t *testing.T, source []byte) map[string]any {
	t.Helper()

	var ns map[string]any
	locals := map[string]any{}
	exports := map[string]any{}

	for line := range strings.SplitSeq(strings.TrimSpace(string(source)), "\n") {
		switch {
		case strings.HasPrefix(line, "import "):
		case line == "export default cjs;":
			exports[domain.DefaultExportName] = ns
		case requireLine.MatchString(line):
			var path string
			require.NoError(t, json.Unmarshal([]byte(requireLine.FindStringSubmatch(line)[1]), &path))
			h.required = append(h.required, path)
			ns = h.namespaces[path]
		case bindingLine.MatchString(line):
			m := bindingLine.FindStringSubmatch(line)
			var key string
			require.NoError(t, json.Unmarshal([]byte(m[2]), &key))
			locals[m[1]] = ns[key]
		case exportLine.MatchString(line):
			m := exportLine.FindStringSubmatch(line)
			name := m[2]
			if strings.HasPrefix(name, `"`) {
				require.NoError(t, json.Unmarshal([]byte(name), &name))
			}
			exports[name] = locals[m[1]]
		default:
			t.Fatalf("unexpected line %q", line)
		}
	}
	return exports
}

func TestGetSource_RoundTrip(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)
	src, err := e.hooks.GetSource(context.Background(), "file:///project/src/legacy.cjs", domain.SourceContext{}, nil)
	require.NoError(t, err)

	namespace := map[string]any{"foo": 1, "bar": 2}
	host := &mockHost{namespaces: map[string]map[string]any{"/project/src/legacy.cjs": namespace}}
	exports := host.evaluate(t, src.Source)

	assert.Equal(t, []string{"/project/src/legacy.cjs"}, host.required)
	assert.Equal(t, 1, exports["foo"])
	assert.Equal(t, 2, exports["bar"])
	assert.Equal(t, namespace, exports[domain.DefaultExportName])
	assert.Len(t, exports, 3)
}

func TestSynthesize_Golden(t *testing.T) {
	t.Parallel()

	exports := domain.NewExportSet("default", "a", "has-path", "$x", "ünï", "a", "class")
	got := interop.Synthesize("node:module", `/lib/odd "name".js`, exports)

	g := goldie.New(t)
	g.Assert(t, "odd_names", got)

	host := &mockHost{namespaces: map[string]map[string]any{
		`/lib/odd "name".js`: {"a": "A", "has-path": "H", "$x": "X", "ünï": "U", "class": "C", "default": "D"},
	}}
	ns := host.evaluate(t, got)
	assert.Equal(t, "H", ns["has-path"])
	assert.Equal(t, "C", ns["class"])
	// The namespace itself is the default export, never its "default" member.
	assert.NotEqual(t, "D", ns[domain.DefaultExportName])
}

func TestSynthesize_EmptyExportSet(t *testing.T) {
	t.Parallel()

	got := interop.Synthesize("", "/x.js", domain.ExportSet{})
	assert.Equal(t,
		"import {createRequire as __cjs_createRequire} from \"module\";\n"+
			"const cjs = __cjs_createRequire(import.meta.url)(\"/x.js\");\n"+
			"export default cjs;\n",
		string(got))
}

func TestGetSource_ConcurrentAnalyzerInit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockExportAnalyzer(ctrl)
	analyzer.EXPECT().Init(gomock.Any()).Return(nil).Times(1)
	analyzer.EXPECT().Exports(gomock.Any()).Return(domain.NewExportSet("foo", "bar")).MinTimes(1)

	cfg := domain.DefaultConfig("/project")
	fsys := fs.NewCachedFS(fs.NewMapFSAdapter("/", projectFS()))
	s, err := interop.NewSession(cfg, fsys, nil, noderesolve.NewFactory(fsys, nil, nil), analyzer, quietLogger(t))
	require.NoError(t, err)
	synth := interop.NewSynthesizer(s, interop.NewClassifier(s))

	const workers = 32
	results := make([][]byte, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			res, err := synth.GetSource(context.Background(), "file:///project/src/legacy.cjs", domain.SourceContext{}, nil)
			assert.NoError(t, err)
			results[i] = res.Source
		})
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.Contains(t, string(results[0]), "export {__cjs_export_1 as bar};")
}

func TestGetSource_AnalyzerInitFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockExportAnalyzer(ctrl)
	analyzer.EXPECT().Init(gomock.Any()).Return(assert.AnError).Times(1)

	fsys := fs.NewMapFSAdapter("/", projectFS())
	s, err := interop.NewSession(domain.DefaultConfig("/project"), fsys, nil, nil, analyzer, quietLogger(t))
	require.NoError(t, err)
	synth := interop.NewSynthesizer(s, interop.NewClassifier(s))

	for range 2 {
		_, err := synth.GetSource(context.Background(), "file:///project/src/legacy.cjs", domain.SourceContext{}, nil)
		assert.ErrorIs(t, err, domain.ErrAnalyzerInitFailed)
		assert.ErrorIs(t, err, assert.AnError)
	}
}

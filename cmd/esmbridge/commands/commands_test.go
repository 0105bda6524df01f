package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/esmbridge/cmd/esmbridge/commands"
	"go.trai.ch/esmbridge/internal/app"
	"go.trai.ch/esmbridge/internal/build"
	"go.trai.ch/esmbridge/internal/core/domain"
)

type mockApp struct {
	jsonMode bool
	verbose  bool

	resolveFunc func(ctx context.Context, specifier string, opts app.ResolveOptions) (domain.ResolveResult, error)
	formatFunc  func(ctx context.Context, target string) (domain.FormatResult, error)
	sourceFunc  func(ctx context.Context, target string) (domain.SourceResult, error)
	loadFunc    func(ctx context.Context, specifier string, opts app.ResolveOptions) (*app.LoadResult, error)
	checkFunc   func(ctx context.Context, specifiers []string, opts app.ResolveOptions) ([]app.CheckResult, error)
}

func (m *mockApp) Configure(jsonMode, verbose bool) bool {
	m.jsonMode = jsonMode
	m.verbose = verbose
	return jsonMode
}

func (m *mockApp) Resolve(ctx context.Context, specifier string, opts app.ResolveOptions) (domain.ResolveResult, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, specifier, opts)
	}
	return domain.ResolveResult{}, nil
}

func (m *mockApp) Format(ctx context.Context, target string) (domain.FormatResult, error) {
	if m.formatFunc != nil {
		return m.formatFunc(ctx, target)
	}
	return domain.FormatResult{}, nil
}

func (m *mockApp) Source(ctx context.Context, target string) (domain.SourceResult, error) {
	if m.sourceFunc != nil {
		return m.sourceFunc(ctx, target)
	}
	return domain.SourceResult{}, nil
}

func (m *mockApp) Load(ctx context.Context, specifier string, opts app.ResolveOptions) (*app.LoadResult, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, specifier, opts)
	}
	return &app.LoadResult{}, nil
}

func (m *mockApp) Check(ctx context.Context, specifiers []string, opts app.ResolveOptions) ([]app.CheckResult, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, specifiers, opts)
	}
	return nil, nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Resolve(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.ResolveOptions
		mock := &mockApp{
			resolveFunc: func(_ context.Context, specifier string, opts app.ResolveOptions) (domain.ResolveResult, error) {
				captured = opts
				return domain.ResolveResult{URL: "file:///p/node_modules/" + specifier + "/index.js"}, nil
			},
		}

		out, err := execute(t, mock, "resolve", "dep", "--parent", "src/main.js", "--conditions", "import,browser")
		require.NoError(t, err)
		assert.Equal(t, "src/main.js", captured.ParentURL)
		assert.Equal(t, []string{"import", "browser"}, captured.Conditions)
		assert.Equal(t, "✓ dep → file:///p/node_modules/dep/index.js\n", out)
	})

	t.Run("json output", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ string, _ app.ResolveOptions) (domain.ResolveResult, error) {
				return domain.ResolveResult{URL: "node:fs"}, nil
			},
		}

		out, err := execute(t, mock, "--json", "resolve", "fs")
		require.NoError(t, err)
		assert.True(t, mock.jsonMode)
		assert.JSONEq(t, `{"specifier": "fs", "url": "node:fs"}`, out)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ string, _ app.ResolveOptions) (domain.ResolveResult, error) {
				return domain.ResolveResult{}, domain.ErrNotFound
			},
		}

		_, err := execute(t, mock, "resolve", "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("requires a specifier", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "resolve")
		require.Error(t, err)
	})
}

func TestCommands_Format(t *testing.T) {
	mock := &mockApp{
		formatFunc: func(_ context.Context, target string) (domain.FormatResult, error) {
			assert.Equal(t, "lib/a.cjs", target)
			return domain.FormatResult{Format: domain.FormatLegacy}, nil
		},
	}

	out, err := execute(t, mock, "format", "lib/a.cjs")
	require.NoError(t, err)
	assert.Equal(t, "✓ lib/a.cjs → commonjs\n", out)
}

func TestCommands_Source(t *testing.T) {
	mock := &mockApp{
		sourceFunc: func(_ context.Context, _ string) (domain.SourceResult, error) {
			return domain.SourceResult{Source: []byte("export default 1;\n")}, nil
		},
	}

	t.Run("raw", func(t *testing.T) {
		out, err := execute(t, mock, "source", "a.mjs")
		require.NoError(t, err)
		assert.Equal(t, "export default 1;\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, mock, "source", "a.mjs", "--json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"target": "a.mjs", "source": "export default 1;\n"}`, out)
	})
}

func TestCommands_Load(t *testing.T) {
	mock := &mockApp{
		loadFunc: func(_ context.Context, specifier string, _ app.ResolveOptions) (*app.LoadResult, error) {
			return &app.LoadResult{
				Specifier: specifier,
				URL:       "file:///p/dep.js",
				Format:    domain.FormatLegacy,
				Source:    "export default cjs;\n",
			}, nil
		},
	}

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, mock, "load", "dep")
		require.NoError(t, err)
		assert.Equal(t, "✓ dep → file:///p/dep.js commonjs\nexport default cjs;\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, mock, "load", "dep", "--json")
		require.NoError(t, err)

		var got app.LoadResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "dep", got.Specifier)
		assert.Equal(t, domain.FormatLegacy, got.Format)
		assert.Equal(t, "export default cjs;\n", got.Source)
	})
}

func TestCommands_Check(t *testing.T) {
	t.Run("reports every specifier", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, specifiers []string, _ app.ResolveOptions) ([]app.CheckResult, error) {
				assert.Equal(t, []string{"fs", "missing"}, specifiers)
				return []app.CheckResult{
					{Specifier: "fs", URL: "node:fs", Format: domain.FormatBuiltin},
					{Specifier: "missing", Err: errors.New("cannot find module")},
				}, domain.ErrCheckFailed
			},
		}

		out, err := execute(t, mock, "check", "fs", "missing")
		require.ErrorIs(t, err, domain.ErrCheckFailed)
		assert.Equal(t, "✓ fs → node:fs builtin\n✗ missing: cannot find module\n", out)
	})

	t.Run("shows usage when no specifiers provided", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, _ []string, _ app.ResolveOptions) ([]app.CheckResult, error) {
				panic("should not be called")
			},
		}

		out, err := execute(t, mock, "check")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})

	t.Run("other errors are returned", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, _ []string, _ app.ResolveOptions) ([]app.CheckResult, error) {
				return nil, context.Canceled
			},
		}

		_, err := execute(t, mock, "check", "fs")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCommands_Verbose(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, mock, "--verbose", "format", "a.js")
	require.NoError(t, err)
	assert.True(t, mock.verbose)
	assert.False(t, mock.jsonMode)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)

	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)
}

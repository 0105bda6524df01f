package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/esmbridge/internal/core/domain"
)

func TestParseModuleType(t *testing.T) {
	got, err := domain.ParseModuleType("", domain.FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatLegacy, got)

	got, err = domain.ParseModuleType("", domain.FormatModern)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatModern, got)

	got, err = domain.ParseModuleType("module", domain.FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatModern, got)

	got, err = domain.ParseModuleType("commonjs", domain.FormatModern)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatLegacy, got)

	_, err = domain.ParseModuleType("esm", domain.FormatLegacy)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestFormatPolicy_Report(t *testing.T) {
	def := domain.DefaultFormatPolicy()
	assert.Equal(t, domain.FormatLegacy, def.Report(domain.FormatLegacy))
	assert.Equal(t, domain.FormatModern, def.Report(domain.FormatModern))

	wrap := domain.FormatPolicy{AbsentType: domain.FormatModern, WrapLegacy: true}
	assert.Equal(t, domain.FormatModern, wrap.Report(domain.FormatLegacy))
	assert.Equal(t, domain.FormatModern, wrap.Report(domain.FormatModern))
}

func TestExportSet(t *testing.T) {
	s := domain.NewExportSet("foo", "bar", "foo", "default", "", "__esModule")

	assert.Equal(t, []string{"foo", "bar", "default", "__esModule"}, s.Names())
	assert.Equal(t, []string{"foo", "bar", "__esModule"}, s.Named())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Has("bar"))
	assert.False(t, s.Has("baz"))

	assert.False(t, s.Add("bar"))
	assert.True(t, s.Add("baz"))
	assert.Equal(t, "baz", s.Names()[4])

	var empty domain.ExportSet
	assert.Empty(t, empty.Names())
	assert.False(t, empty.Has("x"))
}

func TestModulePath(t *testing.T) {
	a := domain.NewModulePath("/project/index.js")
	b := domain.NewModulePath("/project/index.js")
	assert.Equal(t, a, b)
	assert.Equal(t, "/project/index.js", a.String())
	assert.False(t, a.IsZero())

	var zero domain.ModulePath
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestPackageLocator_String(t *testing.T) {
	assert.Equal(t, "lodash@npm:4.17.21", domain.PackageLocator{Name: "lodash", Reference: "npm:4.17.21"}.String())
	assert.Equal(t, "<root>", domain.PackageLocator{}.String())
}

func TestParseManifest(t *testing.T) {
	m, err := domain.ParseManifest("/p/package.json", []byte(`{"name":"p","type":"module","exports":{"./a":"./a.js"}}`))
	require.NoError(t, err)
	assert.Equal(t, "module", m.Type)
	assert.True(t, m.HasExports())

	m, err = domain.ParseManifest("/p/package.json", []byte(`{"name":"p","exports":null}`))
	require.NoError(t, err)
	assert.False(t, m.HasExports())

	_, err = domain.ParseManifest("/p/package.json", []byte(`{`))
	require.ErrorIs(t, err, domain.ErrManifestParseFailed)
}

package interop

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"go.trai.ch/esmbridge/internal/core/domain"
)

// Synthesizer serves module sources, wrapping legacy modules in a modern module that
// re-exports their namespace under named bindings.
type Synthesizer struct {
	s          *Session
	classifier *Classifier
}

// NewSynthesizer creates a Synthesizer backed by s. Unseen paths are classified through classifier.
func NewSynthesizer(s *Session, classifier *Classifier) *Synthesizer {
	return &Synthesizer{s: s, classifier: classifier}
}

// GetSource returns the source the host should evaluate for url.
func (y *Synthesizer) GetSource(
	ctx context.Context,
	url string,
	sc domain.SourceContext,
	next domain.DefaultSourceFunc,
) (domain.SourceResult, error) {
	if !domain.IsFileURL(url) {
		return next(ctx, url, sc)
	}
	path, err := domain.FileURLToPath(url)
	if err != nil {
		return domain.SourceResult{}, err
	}
	switch filepath.Ext(path) {
	case domain.ExtMJS, domain.ExtCJS, domain.ExtJS:
	default:
		return next(ctx, url, sc)
	}

	if !y.s.IsRealModule(path) {
		if _, err := y.classifier.Classify(ctx, path); err != nil {
			return domain.SourceResult{}, err
		}
	}
	if y.s.IsRealModule(path) {
		source, err := y.s.readSource(path)
		if err != nil {
			return domain.SourceResult{}, err
		}
		return domain.SourceResult{Source: source}, nil
	}

	if err := y.s.waitAnalyzer(ctx); err != nil {
		return domain.SourceResult{}, err
	}
	source, err := y.s.readSource(path)
	if err != nil {
		return domain.SourceResult{}, err
	}
	exports := y.s.exportsOf(source)

	return domain.SourceResult{Source: Synthesize(y.s.cfg.RequireModule, path, exports)}, nil
}

// Synthesize renders the wrapper module for the legacy module at path. The module is
// required once through the host's createRequire, so the host's module cache keeps it a
// singleton. Named exports are snapshots of the namespace taken when the wrapper runs.
func Synthesize(requireModule, path string, exports domain.ExportSet) []byte {
	if requireModule == "" {
		requireModule = domain.DefaultRequireModule
	}

	var b bytes.Buffer
	b.WriteString("import {createRequire as __cjs_createRequire} from " + jsString(requireModule) + ";\n")
	b.WriteString("const cjs = __cjs_createRequire(import.meta.url)(" + jsString(path) + ");\n")
	b.WriteString("export default cjs;\n")

	for i, name := range exports.Named() {
		local := "__cjs_export_" + strconv.Itoa(i)
		b.WriteString("const " + local + " = cjs[" + jsString(name) + "];\n")
		b.WriteString("export {" + local + " as " + exportName(name) + "};\n")
	}
	return b.Bytes()
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// exportName spells name for an export clause: identifiers as is, anything else as a
// string literal.
func exportName(name string) string {
	if isIdentifierName(name) {
		return name
	}
	return jsString(name)
}

func isIdentifierName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '$' || r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		default:
			return false
		}
	}
	return true
}

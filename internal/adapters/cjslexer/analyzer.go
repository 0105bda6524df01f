// Package cjslexer statically extracts the export names of CommonJS sources.
package cjslexer

import (
	"context"
	"sync"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

var _ ports.ExportAnalyzer = (*Analyzer)(nil)

// regexKeywords may directly precede a regular expression literal.
var regexKeywords = []string{
	"return", "typeof", "instanceof", "in", "of", "new", "delete", "void",
	"throw", "case", "do", "else", "yield", "await",
}

// Analyzer finds export assignments without executing the source.
type Analyzer struct {
	once     sync.Once
	keywords map[string]bool
}

// New creates an Analyzer. Init must run before Exports.
func New() *Analyzer {
	return &Analyzer{}
}

// Init builds the keyword tables. Repeated calls are no-ops.
func (a *Analyzer) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.once.Do(func() {
		a.keywords = make(map[string]bool, len(regexKeywords))
		for _, k := range regexKeywords {
			a.keywords[k] = true
		}
	})
	return nil
}

// Exports returns the names assigned to the module's export namespace, in source order.
func (a *Analyzer) Exports(source []byte) domain.ExportSet {
	_ = a.Init(context.Background())

	s := scanner{toks: tokenize(source, a.keywords)}
	s.run()
	return s.exports
}

type scanner struct {
	toks    []token
	exports domain.ExportSet
}

func (s *scanner) run() {
	for i := range s.toks {
		switch {
		case s.ident(i, "exports") && !s.punct(i-1, "."):
			s.member(i + 1)
		case s.ident(i, "module") && !s.punct(i-1, ".") && s.punct(i+1, ".") && s.ident(i+2, "exports"):
			if !s.member(i + 3) {
				s.moduleAssign(i + 3)
			}
		case s.ident(i, "Object") && s.punct(i+1, ".") && s.ident(i+2, "defineProperty") && s.punct(i+3, "("):
			s.defineProperty(i + 4)
		}
	}
}

// member recognises ".name =" and "['name'] =" after an exports reference.
func (s *scanner) member(i int) bool {
	switch {
	case s.punct(i, ".") && s.kind(i+1, tokIdent) && s.punct(i+2, "="):
		s.exports.Add(s.toks[i+1].text)
		return true
	case s.punct(i, "[") && s.kind(i+1, tokString) && s.punct(i+2, "]") && s.punct(i+3, "="):
		s.exports.Add(s.toks[i+1].text)
		return true
	}
	return false
}

// moduleAssign recognises "module.exports = { ... }".
func (s *scanner) moduleAssign(i int) {
	if s.punct(i, "=") && s.punct(i+1, "{") {
		s.objectLiteral(i + 2)
	}
}

// defineProperty recognises "Object.defineProperty(exports, 'name'," and the module.exports form.
func (s *scanner) defineProperty(i int) {
	switch {
	case s.ident(i, "exports"):
		i++
	case s.ident(i, "module") && s.punct(i+1, ".") && s.ident(i+2, "exports"):
		i += 3
	default:
		return
	}
	if s.punct(i, ",") && s.kind(i+1, tokString) && s.punct(i+2, ",") {
		s.exports.Add(s.toks[i+1].text)
	}
}

// objectLiteral collects the plain keys of an object literal starting after "{".
// Spreads, computed keys and accessors are skipped.
func (s *scanner) objectLiteral(i int) {
	for i < len(s.toks) && !s.punct(i, "}") {
		switch {
		case s.kind(i, tokIdent) && (s.punct(i+1, ",") || s.punct(i+1, "}")):
			s.exports.Add(s.toks[i].text)
			i++
		case (s.kind(i, tokIdent) || s.kind(i, tokString)) && (s.punct(i+1, ":") || s.punct(i+1, "(")):
			s.exports.Add(s.toks[i].text)
			i = s.skipValue(i + 1)
		default:
			i = s.skipValue(i)
		}
		if s.punct(i, ",") {
			i++
		}
	}
}

// skipValue advances to the next "," or "}" at the current nesting level.
func (s *scanner) skipValue(i int) int {
	depth := 0
	for ; i < len(s.toks); i++ {
		t := s.toks[i]
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]":
			depth--
		case "}":
			if depth == 0 {
				return i
			}
			depth--
		case ",":
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

func (s *scanner) kind(i int, k tokenKind) bool {
	return i >= 0 && i < len(s.toks) && s.toks[i].kind == k
}

func (s *scanner) ident(i int, name string) bool {
	return s.kind(i, tokIdent) && s.toks[i].text == name
}

func (s *scanner) punct(i int, p string) bool {
	return s.kind(i, tokPunct) && s.toks[i].text == p
}

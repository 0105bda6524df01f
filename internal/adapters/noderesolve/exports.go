package noderesolve

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/esmbridge/internal/core/domain"
)

// outcome of resolving a target of an exports or imports map.
type outcome int

const (
	// unmatched means no condition or alternative applied; callers try the next one.
	unmatched outcome = iota
	// blocked means the map explicitly maps the request to null.
	blocked
	// matched means a path was produced.
	matched
)

// subpathMap normalizes an "exports" value to a map keyed by subpath.
// A string, an array, or an object of conditions is shorthand for {".": exports}.
// Objects mixing subpath keys and condition keys are invalid.
func subpathMap(exports *value) (*value, bool) {
	if exports.kind == kindObject {
		dots := 0
		for _, m := range exports.members {
			if strings.HasPrefix(m.key, ".") {
				dots++
			}
		}
		switch {
		case dots > 0 && dots == len(exports.members):
			return exports, true
		case dots > 0:
			return nil, false
		}
	}
	return &value{kind: kindObject, members: []member{{key: ".", value: exports}}}, true
}

// matchKey finds the entry of m for key: an exact key first, otherwise the most
// specific single-"*" pattern.
func matchKey(m *value, key string) (target *value, patternMatch string, isPattern, ok bool) {
	if !strings.Contains(key, "*") {
		if t, found := m.get(key); found {
			return t, "", false, true
		}
	}

	bestKey := ""
	for _, mem := range m.members {
		prefix, suffix, hasStar := strings.Cut(mem.key, "*")
		if !hasStar || strings.Contains(suffix, "*") {
			continue
		}
		if !strings.HasPrefix(key, prefix) || key == prefix {
			continue
		}
		if len(key) < len(mem.key) || !strings.HasSuffix(key, suffix) {
			continue
		}
		if bestKey == "" || patternKeyLess(mem.key, bestKey) {
			bestKey = mem.key
			target = mem.value
			patternMatch = key[len(prefix) : len(key)-len(suffix)]
		}
	}
	if bestKey == "" {
		return nil, "", false, false
	}
	return target, patternMatch, true, true
}

// patternKeyLess orders pattern keys by specificity: the longer prefix before "*" wins,
// then the longer key.
func patternKeyLess(a, b string) bool {
	aBase := strings.Index(a, "*") + 1
	bBase := strings.Index(b, "*") + 1
	if aBase != bBase {
		return aBase > bBase
	}
	return len(a) > len(b)
}

// resolveTarget evaluates one target of an exports or imports map for the package at pkgDir.
func (r *Resolver) resolveTarget(
	ctx context.Context,
	pkgDir string,
	target *value,
	patternMatch string,
	isPattern, isImports bool,
) (string, outcome, error) {
	switch target.kind {
	case kindNull:
		return "", blocked, nil

	case kindString:
		return r.resolveStringTarget(ctx, pkgDir, target.str, patternMatch, isPattern, isImports)

	case kindArray:
		if len(target.items) == 0 {
			return "", blocked, nil
		}
		for _, item := range target.items {
			p, o, err := r.resolveTarget(ctx, pkgDir, item, patternMatch, isPattern, isImports)
			if err != nil {
				return "", unmatched, err
			}
			if o == unmatched {
				continue
			}
			return p, o, nil
		}
		return "", unmatched, nil

	case kindObject:
		for _, m := range target.members {
			if m.key != "default" && !r.conditions[m.key] {
				continue
			}
			p, o, err := r.resolveTarget(ctx, pkgDir, m.value, patternMatch, isPattern, isImports)
			if err != nil {
				return "", unmatched, err
			}
			if o == unmatched {
				continue
			}
			return p, o, nil
		}
		return "", unmatched, nil

	default:
		return "", unmatched, nil
	}
}

func (r *Resolver) resolveStringTarget(
	ctx context.Context,
	pkgDir, target, patternMatch string,
	isPattern, isImports bool,
) (string, outcome, error) {
	if isPattern {
		if hasInvalidSegment(patternMatch) {
			return "", unmatched, nil
		}
		target = strings.ReplaceAll(target, "*", patternMatch)
	}

	if !strings.HasPrefix(target, "./") {
		// Imports may map to other packages.
		if isImports && !strings.HasPrefix(target, "../") && !strings.HasPrefix(target, "/") &&
			!domain.IsValidURL(target) {
			p, err := r.resolveBare(ctx, pkgDir, target)
			if err != nil {
				return "", unmatched, err
			}
			return p, matched, nil
		}
		return "", unmatched, nil
	}

	if hasInvalidSegment(strings.TrimPrefix(target, "./")) {
		return "", unmatched, nil
	}

	return filepath.Join(pkgDir, filepath.FromSlash(target)), matched, nil
}

// hasInvalidSegment reports whether a target path would step outside its package.
func hasInvalidSegment(p string) bool {
	for seg := range strings.SplitSeq(strings.ReplaceAll(p, `\`, "/"), "/") {
		switch strings.ToLower(seg) {
		case "..", ".", domain.GraphRootDir:
			return true
		}
	}
	return false
}

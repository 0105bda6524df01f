package domain

import "go.trai.ch/zerr"

// Format is the module format reported to the host.
// Besides Legacy and Modern, host defaults may report formats of their own (e.g. "builtin").
type Format string

const (
	// FormatLegacy is a synchronous module exporting a single namespace object.
	FormatLegacy Format = "commonjs"
	// FormatModern is a module with statically declared named exports.
	FormatModern Format = "module"
	// FormatBuiltin is reported by the host default for built-in modules.
	FormatBuiltin Format = "builtin"
	// FormatJSON is reported by the host default for structured content.
	FormatJSON Format = "json"
)

// String returns the format name as the host spells it.
func (f Format) String() string {
	return string(f)
}

// ParseModuleType maps a manifest "type" value onto a Format.
// An empty value yields the given fallback; unknown values are rejected.
func ParseModuleType(value string, fallback Format) (Format, error) {
	switch value {
	case "":
		return fallback, nil
	case string(FormatModern):
		return FormatModern, nil
	case string(FormatLegacy):
		return FormatLegacy, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown module type"), "module_type", value)
	}
}

// FormatPolicy describes how the classifier treats manifests without a "type" field
// and how legacy modules are reported.
type FormatPolicy struct {
	// AbsentType is the module type assumed when the nearest manifest has no "type".
	AbsentType Format

	// WrapLegacy reports legacy modules as Modern so that the host fetches their source
	// through GetSource, where a named-export wrapper is synthesized.
	WrapLegacy bool
}

// DefaultFormatPolicy treats untyped packages as legacy and lets the host load them natively.
func DefaultFormatPolicy() FormatPolicy {
	return FormatPolicy{AbsentType: FormatLegacy}
}

// Report returns the format handed to the host for a module whose actual type is t.
func (p FormatPolicy) Report(t Format) Format {
	if t == FormatLegacy && p.WrapLegacy {
		return FormatModern
	}
	return t
}

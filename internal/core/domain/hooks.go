package domain

import (
	"context"
	"slices"
	"strings"
)

// ResolveContext is the caller context of a resolve request.
type ResolveContext struct {
	// ParentURL is the URL of the importing module. Empty means the session working directory.
	ParentURL string

	// Conditions is the ordered condition list. Empty means the configured default.
	Conditions []string
}

// ResolveResult is the outcome of a resolve request.
type ResolveResult struct {
	URL string
}

// FormatContext is the caller context of a format request.
type FormatContext struct{}

// FormatResult is the outcome of a format request.
type FormatResult struct {
	Format Format
}

// SourceContext is the caller context of a source request.
type SourceContext struct {
	// Format is the format previously reported for the URL, if known.
	Format Format
}

// SourceResult is the outcome of a source request.
type SourceResult struct {
	Source []byte
}

// DefaultResolveFunc is the host's own resolution, used for requests outside the interop layer.
type DefaultResolveFunc func(ctx context.Context, specifier string, rc ResolveContext) (ResolveResult, error)

// DefaultClassifyFunc is the host's own format classification.
type DefaultClassifyFunc func(ctx context.Context, url string, fc FormatContext) (FormatResult, error)

// DefaultSourceFunc is the host's own source loading.
type DefaultSourceFunc func(ctx context.Context, url string, sc SourceContext) (SourceResult, error)

// ResolutionRequest is a validated resolve request.
type ResolutionRequest struct {
	Specifier  string
	OriginPath string
	Conditions []string
}

// ConditionKey renders a condition list for messages and logs, e.g. "node.import".
// It is not unique: ["a.b", "c"] and ["a", "b.c"] render alike.
func ConditionKey(conditions []string) string {
	return strings.Join(conditions, ".")
}

// ResolverKey identifies the resolver configuration of a condition list. Order
// matters, and distinct lists never share a key.
func ResolverKey(conditions []string) string {
	return strings.Join(conditions, "\x00")
}

// IsDefaultConditions reports whether conditions is the host's default list.
func IsDefaultConditions(conditions []string) bool {
	return slices.Equal(conditions, DefaultConditions)
}

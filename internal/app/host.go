package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// The host defaults stand in for the module host's own hooks. They serve built-in
// modules and structured content and reject everything else.

func (a *App) hostResolve(_ context.Context, specifier string, _ domain.ResolveContext) (domain.ResolveResult, error) {
	if domain.IsBuiltin(specifier) {
		return domain.ResolveResult{URL: domain.BuiltinURL(specifier)}, nil
	}
	return domain.ResolveResult{}, unsupported(specifier)
}

func (a *App) hostClassify(_ context.Context, url string, _ domain.FormatContext) (domain.FormatResult, error) {
	switch {
	case strings.HasPrefix(url, domain.BuiltinScheme):
		return domain.FormatResult{Format: domain.FormatBuiltin}, nil
	case domain.IsFileURL(url) && strings.EqualFold(filepath.Ext(url), domain.ExtJSON):
		return domain.FormatResult{Format: domain.FormatJSON}, nil
	default:
		return domain.FormatResult{}, unsupported(url)
	}
}

func (a *App) hostSource(_ context.Context, url string, _ domain.SourceContext) (domain.SourceResult, error) {
	if !domain.IsFileURL(url) {
		return domain.SourceResult{}, unsupported(url)
	}
	path, err := domain.FileURLToPath(url)
	if err != nil {
		return domain.SourceResult{}, err
	}
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return domain.SourceResult{}, zerr.With(errors.Join(domain.ErrSourceReadFailed, err), "path", path)
	}
	return domain.SourceResult{Source: data}, nil
}

func unsupported(url string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnsupportedURL, "no loader for "+url), "url", url)
}

// Package app implements the application layer for esmbridge.
package app

import (
	"context"
	"path/filepath"
	"runtime"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/esmbridge/internal/engine/interop"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App drives the interop hooks the way a module host would.
type App struct {
	hooks  *interop.Hooks
	fs     ports.FileSystem
	logger ports.Logger
	cfg    *domain.Config
}

// New creates a new App instance.
func New(hooks *interop.Hooks, fsys ports.FileSystem, log ports.Logger, cfg *domain.Config) *App {
	return &App{
		hooks:  hooks,
		fs:     fsys,
		logger: log,
		cfg:    cfg,
	}
}

// ResolveOptions describe the importing module of a request.
type ResolveOptions struct {
	// ParentURL is the URL or path of the importing module.
	ParentURL string
	// Conditions overrides the configured condition list.
	Conditions []string
}

// LoadResult is the outcome of the full hook sequence for one specifier.
type LoadResult struct {
	Specifier string        `json:"specifier"`
	URL       string        `json:"url"`
	Format    domain.Format `json:"format"`
	Source    string        `json:"source,omitempty"`
}

// CheckResult is the outcome of loading one specifier of a check.
type CheckResult struct {
	Specifier string        `json:"specifier"`
	URL       string        `json:"url,omitempty"`
	Format    domain.Format `json:"format,omitempty"`
	Bytes     int           `json:"bytes"`
	Err       error         `json:"-"`
}

// Configure applies the command line output settings on top of the configuration and
// reports whether results should be printed as JSON.
func (a *App) Configure(jsonMode, verbose bool) bool {
	jsonMode = jsonMode || a.cfg.LogJSON
	verbose = verbose || a.cfg.Verbose

	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(jsonMode)
	}
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetRoot(string) }); ok {
		l.SetRoot(a.cfg.Root)
	}
	return jsonMode
}

// Resolve runs the resolve hook for specifier.
func (a *App) Resolve(ctx context.Context, specifier string, opts ResolveOptions) (domain.ResolveResult, error) {
	rc := domain.ResolveContext{
		ParentURL:  a.toURL(opts.ParentURL),
		Conditions: opts.Conditions,
	}
	return a.hooks.Resolve(ctx, specifier, rc, a.hostResolve)
}

// Format runs the format hook for a URL or a path.
func (a *App) Format(ctx context.Context, target string) (domain.FormatResult, error) {
	return a.hooks.ClassifyFormat(ctx, a.toURL(target), domain.FormatContext{}, a.hostClassify)
}

// Source runs the format and source hooks for a URL or a path.
func (a *App) Source(ctx context.Context, target string) (domain.SourceResult, error) {
	url := a.toURL(target)
	format, err := a.hooks.ClassifyFormat(ctx, url, domain.FormatContext{}, a.hostClassify)
	if err != nil {
		return domain.SourceResult{}, err
	}
	return a.hooks.GetSource(ctx, url, domain.SourceContext{Format: format.Format}, a.hostSource)
}

// Load runs resolve, format and source for specifier. Built-in modules have no source.
func (a *App) Load(ctx context.Context, specifier string, opts ResolveOptions) (*LoadResult, error) {
	resolved, err := a.Resolve(ctx, specifier, opts)
	if err != nil {
		return nil, err
	}
	format, err := a.hooks.ClassifyFormat(ctx, resolved.URL, domain.FormatContext{}, a.hostClassify)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{Specifier: specifier, URL: resolved.URL, Format: format.Format}
	if format.Format == domain.FormatBuiltin {
		return res, nil
	}

	src, err := a.hooks.GetSource(ctx, resolved.URL, domain.SourceContext{Format: format.Format}, a.hostSource)
	if err != nil {
		return nil, err
	}
	res.Source = string(src.Source)
	return res, nil
}

// Check loads every specifier concurrently. Results keep the order of specifiers; a
// failing specifier does not stop the others.
func (a *App) Check(ctx context.Context, specifiers []string, opts ResolveOptions) ([]CheckResult, error) {
	if len(specifiers) == 0 {
		return nil, domain.ErrNoSpecifiers
	}

	results := make([]CheckResult, len(specifiers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, specifier := range specifiers {
		g.Go(func() error {
			results[i] = CheckResult{Specifier: specifier}
			loaded, err := a.Load(gctx, specifier, opts)
			if err != nil {
				results[i].Err = zerr.With(err, "specifier", specifier)
				return nil
			}
			results[i].URL = loaded.URL
			results[i].Format = loaded.Format
			results[i].Bytes = len(loaded.Source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	for _, r := range results {
		if r.Err != nil {
			return results, domain.ErrCheckFailed
		}
	}
	return results, nil
}

// toURL turns a path into a file URL relative to the working directory. URLs and the
// empty string are returned unchanged.
func (a *App) toURL(target string) string {
	if target == "" || domain.IsValidURL(target) {
		return target
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(a.cfg.WorkDir, target)
	}
	return domain.PathToFileURL(target)
}

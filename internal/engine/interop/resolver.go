package interop

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver maps specifiers to file URLs inside the dependency graph.
type Resolver struct {
	s *Session
}

// NewResolver creates a Resolver backed by s.
func NewResolver(s *Session) *Resolver {
	return &Resolver{s: s}
}

// Resolve resolves specifier for the caller described by rc. Built-in modules and
// non-file URLs are handed to next unchanged.
func (r *Resolver) Resolve(
	ctx context.Context,
	specifier string,
	rc domain.ResolveContext,
	next domain.DefaultResolveFunc,
) (domain.ResolveResult, error) {
	if domain.IsBuiltin(specifier) {
		return next(ctx, specifier, rc)
	}
	if domain.IsValidURL(specifier) {
		if !domain.IsFileURL(specifier) {
			return next(ctx, specifier, rc)
		}
		p, err := domain.FileURLToPath(specifier)
		if err != nil {
			return domain.ResolveResult{}, err
		}
		specifier = p
	}

	req, err := r.request(specifier, rc)
	if err != nil {
		return domain.ResolveResult{}, err
	}

	path, err := r.resolvePath(ctx, req)
	if err != nil {
		return domain.ResolveResult{}, err
	}
	return domain.ResolveResult{URL: domain.PathToFileURL(path)}, nil
}

// request validates the caller context and applies the defaults for missing fields.
func (r *Resolver) request(specifier string, rc domain.ResolveContext) (domain.ResolutionRequest, error) {
	req := domain.ResolutionRequest{
		Specifier:  specifier,
		OriginPath: r.s.cfg.WorkDir,
		Conditions: rc.Conditions,
	}
	if len(req.Conditions) == 0 {
		req.Conditions = r.s.cfg.Conditions
	}

	switch {
	case rc.ParentURL == "":
	case domain.IsValidURL(rc.ParentURL):
		p, err := domain.FileURLToPath(rc.ParentURL)
		if err != nil {
			return req, zerr.With(err, "specifier", specifier)
		}
		req.OriginPath = p
	default:
		req.OriginPath = filepath.Clean(rc.ParentURL)
	}
	return req, nil
}

// baseDir returns the directory the generic resolver starts from. A relative specifier
// resolves against the caller's directory; a failed stat keeps the caller path.
func (r *Resolver) baseDir(req domain.ResolutionRequest) string {
	if !domain.IsRelativeSpecifier(req.Specifier) {
		return req.OriginPath
	}
	info, err := r.s.fs.Stat(req.OriginPath)
	if err != nil {
		return req.OriginPath
	}
	if info.IsDir() {
		return req.OriginPath
	}
	return filepath.Dir(req.OriginPath)
}

func (r *Resolver) resolvePath(ctx context.Context, req domain.ResolutionRequest) (string, error) {
	base := r.baseDir(req)
	resolver := r.s.resolverFor(req.Conditions)

	path, err := resolver.ResolvePath(ctx, base, req.Specifier)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if !errors.Is(err, domain.ErrNotFound) {
			err = errors.Join(domain.ErrNotFound, err)
		}
		return "", zerr.With(err, "conditions", domain.ConditionKey(req.Conditions))
	}

	if !domain.IsBareSpecifier(req.Specifier) {
		return path, nil
	}

	owner, ok := r.s.graph.LocateOwner(path)
	if !ok {
		r.s.logger.Debug("graph escape: " + req.Specifier + " resolved to " + path)
		err := zerr.Wrap(domain.ErrGraphEscape, "resolve "+strconv.Quote(req.Specifier))
		err = zerr.With(err, "specifier", req.Specifier)
		return "", zerr.With(err, "path", path)
	}
	r.s.logger.Debug(req.Specifier + " resolved in " + owner.String())
	return path, nil
}

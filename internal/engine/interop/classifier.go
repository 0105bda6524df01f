package interop

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Classifier decides whether a resolved file is a legacy or a modern module.
type Classifier struct {
	s *Session
}

// NewClassifier creates a Classifier backed by s.
func NewClassifier(s *Session) *Classifier {
	return &Classifier{s: s}
}

// ClassifyFormat reports the format of the module at url. Non-file URLs and unknown
// extensions are handed to next.
func (c *Classifier) ClassifyFormat(
	ctx context.Context,
	url string,
	fc domain.FormatContext,
	next domain.DefaultClassifyFunc,
) (domain.FormatResult, error) {
	if !domain.IsFileURL(url) {
		return next(ctx, url, fc)
	}
	path, err := domain.FileURLToPath(url)
	if err != nil {
		return domain.FormatResult{}, err
	}

	switch filepath.Ext(path) {
	case domain.ExtJSON:
		if !c.s.cfg.JSONModules {
			err := zerr.Wrap(domain.ErrUnsupportedExtension, "structured content modules are disabled")
			err = zerr.With(err, "path", path)
			return domain.FormatResult{}, zerr.With(err, "url", url)
		}
		return next(ctx, url, fc)
	case domain.ExtMJS, domain.ExtCJS, domain.ExtJS:
	default:
		return next(ctx, url, fc)
	}

	actual, err := c.Classify(ctx, path)
	if err != nil {
		return domain.FormatResult{}, err
	}
	return domain.FormatResult{Format: c.s.cfg.Format.Report(actual)}, nil
}

// Classify returns the actual module type of the script at path, either FormatLegacy
// or FormatModern. Modern modules are recorded as real modules.
func (c *Classifier) Classify(ctx context.Context, path string) (domain.Format, error) {
	file := domain.NewModulePath(path)

	var actual domain.Format
	switch filepath.Ext(path) {
	case domain.ExtMJS:
		actual = domain.FormatModern
	case domain.ExtCJS:
		actual = domain.FormatLegacy
	default:
		f, err := c.lookup(ctx, file)
		if err != nil {
			return "", err
		}
		actual = f
	}

	if actual == domain.FormatModern {
		c.s.markRealModule(file)
	}
	return actual, nil
}

// lookup walks from the file's directory towards the filesystem root until a manifest
// decides the module type.
func (c *Classifier) lookup(ctx context.Context, file domain.ModulePath) (domain.Format, error) {
	if f, ok := c.s.moduleType(file); ok {
		return f, nil
	}

	path := file.String()
	manifest := filepath.Join(filepath.Dir(path), domain.ManifestFileName)
	visited := []domain.ModulePath{file}
	maxSteps := depth(path)

	for step := 0; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := domain.NewModulePath(manifest)
		if f, ok := c.s.moduleType(key); ok {
			c.s.storeModuleType(f, visited...)
			return f, nil
		}
		visited = append(visited, key)

		if f, ok := c.readModuleType(manifest); ok {
			c.s.storeModuleType(f, visited...)
			c.s.logger.Debug(fmt.Sprintf("%s is %s per %s", path, f, manifest))
			return f, nil
		}

		dir := filepath.Dir(manifest)
		if filepath.Base(dir) == domain.GraphRootDir {
			break
		}
		parent := filepath.Join(filepath.Dir(dir), domain.ManifestFileName)
		if parent == manifest {
			break
		}
		manifest = parent
	}

	err := zerr.Wrap(domain.ErrUndeterminableFormat, "no manifest declares a module type")
	return "", zerr.With(err, "path", path)
}

// readModuleType reads the module type from the manifest at path. It reports false
// when the manifest is missing or unreadable.
func (c *Classifier) readModuleType(path string) (domain.Format, bool) {
	data, err := c.s.fs.ReadFile(path)
	if err != nil {
		return "", false
	}
	m, err := domain.ParseManifest(path, data)
	if err != nil {
		c.s.logger.Debug("skipping unparsable manifest " + path)
		return "", false
	}

	absent := c.s.cfg.Format.AbsentType
	if absent == "" {
		absent = domain.FormatLegacy
	}
	f, err := domain.ParseModuleType(m.Type, absent)
	if err != nil {
		c.s.logger.Warn(fmt.Sprintf("unknown module type %q in %s, assuming %s", m.Type, path, absent))
		return absent, true
	}
	return f, true
}

// depth is the number of directories above path.
func depth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}

// Package config provides the configuration loader for esmbridge.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	FS     ports.FileSystem
	Logger ports.Logger
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(fsys ports.FileSystem, logger ports.Logger) *Loader {
	return &Loader{FS: fsys, Logger: logger}
}

// Load discovers esmbridge.yaml from cwd upwards and returns the resolved configuration.
// Without a config file the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cwd = filepath.Clean(cwd)

	configPath, found := l.findConfiguration(cwd)
	if !found {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		return domain.DefaultConfig(cwd), nil
	}

	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", configPath)
	}

	cfg, err := l.build(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.WorkDir = cwd

	l.Logger.Debug("loaded configuration from " + configPath)
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(configPath string, file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig(resolveRoot(configPath, file.Root))
	cfg.Path = configPath

	if len(file.Conditions) > 0 {
		cfg.Conditions = slices.Clone(file.Conditions)
	}

	if len(file.Extensions) > 0 {
		for _, ext := range file.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "extensions must start with a dot"), "extension", ext)
			}
		}
		cfg.Extensions = slices.Clone(file.Extensions)
	}

	absent, err := domain.ParseModuleType(file.Format.AbsentType, domain.FormatLegacy)
	if err != nil {
		return nil, zerr.With(err, "field", "format.absentType")
	}
	cfg.Format = domain.FormatPolicy{
		AbsentType: absent,
		WrapLegacy: file.Format.WrapLegacy,
	}
	if absent == domain.FormatModern && !file.Format.WrapLegacy {
		l.Logger.Warn(fmt.Sprintf(
			"format.absentType is %q without format.wrapLegacy; untyped legacy packages will fail to link",
			absent,
		))
	}

	cfg.JSONModules = file.JSONModules

	if file.Synthesis.RequireModule != "" {
		cfg.RequireModule = file.Synthesis.RequireModule
	}

	if file.Cache.Resolvers != nil {
		if *file.Cache.Resolvers < 1 {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrInvalidConfig, "cache.resolvers must be positive"),
				"resolvers", *file.Cache.Resolvers,
			)
		}
		cfg.ResolverCacheSize = *file.Cache.Resolvers
	}

	cfg.LogJSON = file.Log.JSON
	cfg.Verbose = file.Log.Verbose

	return cfg, nil
}

// resolveRoot returns the project root: the config file's directory, or the configured
// root resolved against it.
func resolveRoot(configPath, root string) string {
	dir := filepath.Dir(configPath)
	if root == "" {
		return dir
	}
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(dir, root)
}

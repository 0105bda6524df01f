package domain

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// FileScheme is the URL scheme of local files.
const FileScheme = "file"

// IsValidURL reports whether s parses as an absolute URL.
// Single-letter schemes are rejected so that Windows drive paths are not mistaken for URLs.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return len(u.Scheme) > 1
}

// IsFileURL reports whether s is a valid URL with the file scheme.
func IsFileURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, FileScheme)
}

// FileURLToPath converts a file URL to an absolute filesystem path.
func FileURLToPath(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", zerr.With(errors.Join(ErrInvalidFileURL, err), "url", s)
	}
	if !strings.EqualFold(u.Scheme, FileScheme) {
		return "", zerr.With(zerr.Wrap(ErrInvalidFileURL, "scheme "+u.Scheme), "url", s)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", zerr.With(zerr.Wrap(ErrInvalidFileURL, "remote host "+u.Host), "url", s)
	}
	p := filepath.FromSlash(u.Path)
	if !filepath.IsAbs(p) {
		return "", zerr.With(zerr.Wrap(ErrInvalidFileURL, "relative path"), "url", s)
	}
	return filepath.Clean(p), nil
}

// PathToFileURL builds the file URL of an absolute path.
func PathToFileURL(p string) string {
	u := url.URL{Scheme: FileScheme, Path: filepath.ToSlash(p)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}

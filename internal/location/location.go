// Package location resolves media and tree locations onto a filesystem
package location

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// ErrUnsupportedScheme is returned for locations that would need network access
var ErrUnsupportedScheme = errors.New("location: unsupported scheme")

// ErrEmptyLocation is returned for an empty location string
var ErrEmptyLocation = errors.New("location: empty location")

// Resolve turns a bare path or file:// URI into a filesystem path
func Resolve(loc string) (string, error) {
	if loc == "" {
		return "", ErrEmptyLocation
	}
	if !strings.Contains(loc, "://") {
		return loc, nil
	}
	u, err := url.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("location: parsing %q: %w", loc, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("%w: remote file host %s", ErrUnsupportedScheme, u.Host)
	}
	return u.Path, nil
}

// Open resolves loc and opens it on fs
func Open(fs afero.Fs, loc string) (afero.File, error) {
	p, err := Resolve(loc)
	if err != nil {
		return nil, err
	}
	f, err := fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", loc, err)
	}
	return f, nil
}

// Join appends name to loc, keeping the file:// form when loc used it
func Join(loc, name string) string {
	if strings.HasPrefix(loc, "file://") {
		return strings.TrimSuffix(loc, "/") + "/" + name
	}
	return path.Join(loc, name)
}

// OrOS returns fs, or the host filesystem when fs is nil
func OrOS(fs afero.Fs) afero.Fs {
	if fs == nil {
		return afero.NewOsFs()
	}
	return fs
}

package paths

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/compose-network/recordstore/internal/errs"
	"github.com/spf13/afero"
)

const dirPerm = 0o755

// Provider returns the platform convention directories for an application.
type Provider interface {
	ConfigDir(appName string) string
	DataDir(appName string) string
}

// XDG resolves directories through the XDG base directory specification on
// Unix-like systems and the platform-native locations elsewhere.
type XDG struct{}

func (XDG) ConfigDir(appName string) string {
	return filepath.Join(xdg.ConfigHome, appName)
}

func (XDG) DataDir(appName string) string {
	return filepath.Join(xdg.DataHome, appName)
}

// Dirs is the resolved pair of application directories.
type Dirs struct {
	Config string
	Data   string
}

// Resolver computes application directories and makes sure they exist.
type Resolver struct {
	Provider Provider
	Fs       afero.Fs
}

// NewResolver returns a resolver backed by the XDG provider and the OS
// filesystem.
func NewResolver() *Resolver {
	return &Resolver{Provider: XDG{}, Fs: afero.NewOsFs()}
}

// Resolve returns the config and data directories for appName. Non-empty
// overrides are used verbatim. Both directories are created, with parents,
// when missing. Resolve is idempotent.
func (r *Resolver) Resolve(appName, configOverride, dataOverride string) (Dirs, error) {
	if strings.TrimSpace(appName) == "" {
		return Dirs{}, errs.New(errs.InvalidAppName, "resolve dirs", "app name must not be empty")
	}

	provider := r.Provider
	if provider == nil {
		provider = XDG{}
	}

	dirs := Dirs{Config: configOverride, Data: dataOverride}
	if dirs.Config == "" {
		dirs.Config = provider.ConfigDir(appName)
	}
	if dirs.Data == "" {
		dirs.Data = provider.DataDir(appName)
	}

	for _, dir := range []string{dirs.Config, dirs.Data} {
		if err := r.ensureDir(dir); err != nil {
			return Dirs{}, err
		}
	}
	return dirs, nil
}

// ensureDir creates dir and its parents, then checks it is a directory.
func (r *Resolver) ensureDir(dir string) error {
	fs := r.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return errs.Wrap(errs.DirectoryCreation, "ensure dir", fmt.Errorf("failed to create directory: %w", err)).WithPath(dir)
	}
	info, err := fs.Stat(dir)
	if err != nil {
		return errs.Wrap(errs.DirectoryCreation, "ensure dir", fmt.Errorf("failed to stat directory: %w", err)).WithPath(dir)
	}
	if !info.IsDir() {
		return errs.New(errs.DirectoryCreation, "ensure dir", "path exists and is not a directory").WithPath(dir)
	}
	return nil
}

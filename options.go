package recordstore

import (
	"log/slog"
	"os"

	"github.com/compose-network/recordstore/internal/envvars"
	"github.com/compose-network/recordstore/internal/paths"
	"github.com/spf13/afero"
)

// Provider supplies the platform convention directories for an application.
type Provider = paths.Provider

// XDGProvider is the default Provider.
type XDGProvider = paths.XDG

// Option configures a Store.
type Option func(*options)

type options struct {
	configDir string
	dataDir   string
	fs        afero.Fs
	provider  Provider
	logger    *slog.Logger

	envEnabled bool
	envPrefix  string
	envLookup  envvars.Lookup
}

// WithConfigDir uses dir verbatim as the config directory.
func WithConfigDir(dir string) Option {
	return func(o *options) {
		o.configDir = dir
	}
}

// WithDataDir uses dir verbatim as the data directory.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithFs replaces the OS filesystem, mainly for tests.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithProvider replaces the XDG directory provider.
func WithProvider(p Provider) Option {
	return func(o *options) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEnvVars enables environment overrides on load. Variables are named
// after the app (see EnvPrefix) and take precedence over file values.
func WithEnvVars() Option {
	return func(o *options) {
		o.envEnabled = true
	}
}

// WithEnvPrefix enables environment overrides with a custom prefix, such as
// "MYAPP_".
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envEnabled = true
		o.envPrefix = prefix
	}
}

// WithEnvLookup replaces os.LookupEnv as the source of overrides. It does
// not enable overrides by itself.
func WithEnvLookup(lookup func(key string) (string, bool)) Option {
	return func(o *options) {
		if lookup != nil {
			o.envLookup = lookup
		}
	}
}

// EnvPrefix returns the default variable prefix for appName, for example
// "DOCKER_CAPTAIN_" for "docker-captain".
func EnvPrefix(appName string) string {
	return envvars.Prefix(appName)
}

func defaultOptions() options {
	return options{
		fs:        afero.NewOsFs(),
		provider:  paths.XDG{},
		envLookup: os.LookupEnv,
	}
}

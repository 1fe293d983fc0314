package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/compose-network/recordstore"
	"github.com/compose-network/recordstore/internal/codec"
	"github.com/compose-network/recordstore/internal/logger"
)

var (
	Values Config

	//go:embed config.example.yaml
	exampleYAML []byte
)

type Config struct {
	AppName   string `mapstructure:"app-name" default:"recordstore"`
	ConfigDir string `mapstructure:"config-dir"`
	DataDir   string `mapstructure:"data-dir"`
	LogLevel  string `mapstructure:"log-level" default:"info"`
}

// DefaultConfig decodes the embedded config.example.yaml as a record, so
// keys the example omits fall back to the default tags above. It seeds the
// CLI flag defaults.
func DefaultConfig() (Config, error) {
	cfg, err := codec.Decode[Config](exampleYAML, codec.YAML)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode embedded config.example.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("embedded config.example.yaml: %w", err)
	}
	return cfg, nil
}

// MustDefaultConfig returns embedded defaults or panics if they cannot be loaded.
func MustDefaultConfig() Config {
	cfg, err := DefaultConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.AppName) == "" {
		errs = append(errs, errors.New("app-name is required"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// Open validates c and opens the store it describes. Empty directories fall
// back to the XDG locations for the app name.
func (c Config) Open(opts ...recordstore.Option) (*recordstore.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	base := []recordstore.Option{
		recordstore.WithConfigDir(c.ConfigDir),
		recordstore.WithDataDir(c.DataDir),
	}
	return recordstore.New(c.AppName, append(base, opts...)...)
}

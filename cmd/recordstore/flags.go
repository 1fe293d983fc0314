package main

import (
	"github.com/compose-network/recordstore/configs"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | int | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var defaultConfig = configs.MustDefaultConfig()

var stringFlags = []flagDef[string]{
	{"app-name", "app-name", defaultConfig.AppName, "Application whose directories are used"},
	{"config-dir", "config-dir", defaultConfig.ConfigDir, "Config directory override (default: XDG config home/<app-name>)"},
	{"data-dir", "data-dir", defaultConfig.DataDir, "Data directory override (default: XDG data home/<app-name>)"},
	{"log-level", "log-level", defaultConfig.LogLevel, "Log level (debug, info, warn or error)"},
}

func init() {
	if err := declareFlags(stringFlags); err != nil {
		panic(err)
	}
}

// declareFlags declares persistent root flags and binds them to viper keys.
func declareFlags[T flagType](flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

func declareFlag[T flagType](flagName, viperKey string, defaultValue T, description string) error {
	flags := rootCmd.PersistentFlags()
	switch v := any(defaultValue).(type) {
	case string:
		flags.String(flagName, v, description)
	case int:
		flags.Int(flagName, v, description)
	case bool:
		flags.Bool(flagName, v, description)
	}
	return viper.BindPFlag(viperKey, flags.Lookup(flagName))
}

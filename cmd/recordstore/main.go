package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/compose-network/recordstore/configs"
	"github.com/compose-network/recordstore/internal/demo"
	"github.com/compose-network/recordstore/internal/files"
	"github.com/compose-network/recordstore/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "recordstore"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Inspect and convert records stored in XDG config and data directories",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(execPath))
		}
		viper.AddConfigPath(".")

		viper.SetEnvPrefix(strings.ToUpper(appName))
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		configErr := viper.ReadInConfig()

		if err := viper.Unmarshal(&configs.Values); err != nil {
			return errors.Join(err, errors.New("unable to decode application config"))
		}

		level, err := logger.ParseLevel(configs.Values.LogLevel)
		if err != nil {
			return err
		}
		logger.Initialize(level, os.Stderr)

		// Flags and defaults can provide everything, so a missing file is fine.
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(configErr, &notFound):
			slog.Debug("no config file found, will rely on flags and defaults")
		case configErr != nil:
			const errMsg = "error reading config file"
			slog.With("err", configErr.Error()).Error(errMsg)
			return errors.Join(configErr, errors.New(errMsg))
		default:
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		slog.With("config", configs.Values).Debug("configuration loaded")

		return configs.Values.Validate()
	},
}

func main() {
	rootCmd.AddCommand(files.PathsCMD)
	rootCmd.AddCommand(files.ExistsCMD)
	rootCmd.AddCommand(files.ShowCMD)
	rootCmd.AddCommand(files.ConvertCMD)
	rootCmd.AddCommand(demo.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}

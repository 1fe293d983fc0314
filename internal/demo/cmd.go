package demo

import (
	"fmt"
	"log/slog"

	"github.com/compose-network/recordstore"
	"github.com/compose-network/recordstore/configs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "demo",
	Short: "Save and reload sample records in the configured directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := afero.NewOsFs()
		store, err := configs.Values.Open(recordstore.WithFs(fs))
		if err != nil {
			return err
		}

		slog.Info("running demo", "app", store.AppName())
		if err := run(cmd.OutOrStdout(), fs, store, SampleEnv(store.AppName())); err != nil {
			return fmt.Errorf("error occurred running demo: %w", err)
		}
		return nil
	},
}

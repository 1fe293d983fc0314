package files

import (
	"fmt"
	"log/slog"

	"github.com/compose-network/recordstore"
	"github.com/compose-network/recordstore/configs"
	"github.com/spf13/cobra"
)

var (
	PathsCMD = &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved config and data directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configs.Values.Open()
			if err != nil {
				return err
			}
			return printPaths(cmd.OutOrStdout(), store)
		},
	}

	ExistsCMD = &cobra.Command{
		Use:   "exists <config|data> <file>",
		Short: "Report whether a file exists in a scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, scope, err := openScope(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), store.Exists(scope, args[1]))
			return err
		},
	}

	ShowCMD = &cobra.Command{
		Use:   "show <config|data> <file>",
		Short: "Print a stored file as YAML or JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, scope, err := openScope(args[0])
			if err != nil {
				return err
			}
			in, err := formatFlag(cmd, "format")
			if err != nil {
				return err
			}
			out, err := formatFlag(cmd, "output")
			if err != nil {
				return err
			}
			if err := show(cmd.OutOrStdout(), store, scope, args[1], in, out); err != nil {
				return fmt.Errorf("error occurred showing %s: %w", args[1], err)
			}
			return nil
		},
	}

	ConvertCMD = &cobra.Command{
		Use:   "convert <config|data> <src> <dst>",
		Short: "Re-encode a stored file, for example from YAML to JSON",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, scope, err := openScope(args[0])
			if err != nil {
				return err
			}
			from, err := formatFlag(cmd, "from")
			if err != nil {
				return err
			}
			to, err := formatFlag(cmd, "to")
			if err != nil {
				return err
			}
			path, err := convert(store, scope, args[1], args[2], from, to)
			if err != nil {
				return fmt.Errorf("error occurred converting %s: %w", args[1], err)
			}
			slog.With("path", path).Info("file converted")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
)

func init() {
	ShowCMD.Flags().String("format", "", "Input format (yaml or json), inferred from the extension when empty")
	ShowCMD.Flags().String("output", "yaml", "Output format (yaml or json)")
	ConvertCMD.Flags().String("from", "", "Source format (yaml or json), inferred from the extension when empty")
	ConvertCMD.Flags().String("to", "", "Destination format (yaml or json), inferred from the extension when empty")
}

func openScope(name string) (*recordstore.Store, recordstore.Scope, error) {
	scope, err := recordstore.ParseScope(name)
	if err != nil {
		return nil, 0, err
	}
	store, err := configs.Values.Open()
	if err != nil {
		return nil, 0, err
	}
	return store, scope, nil
}

func formatFlag(cmd *cobra.Command, name string) (recordstore.Format, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return recordstore.FormatAuto, err
	}
	return recordstore.ParseFormat(value)
}

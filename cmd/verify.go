package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rowfs/rowfs/pkg/rowpath"
)

// newVerifyCmd runs the startup checks without mounting.
func newVerifyCmd(fl *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "verify",
		Aliases: []string{"fsck"},
		Short:   "Check that the configuration serves a mountable table",
		Long: `Validates the configuration, connects, and scans the table the way a
mount would. Rows whose name is not a decimal string are reported:
they exist in the table but cannot be served as files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd, fl)
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()

			if err := store.Ping(ctx); err != nil {
				return err
			}

			total, err := store.CountRows(ctx)
			if err != nil {
				return err
			}

			var listed, servable uint64
			err = store.ForEachName(ctx, func(name string) error {
				listed++
				if rowpath.ValidKey(name) {
					servable++
				} else {
					slog.Warn("row name is not servable as a file", "name", name)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if total > listed {
				slog.Warn("rows with NULL or empty names are not listable",
					"count", total-listed)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "table %s: %d rows, %d servable\n",
				cfg.Table, total, servable)
			return nil
		},
	}
}

package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rowfs/rowfs/pkg/fuse"
)

// newMountCmd mounts the table and serves until interrupted or
// unmounted.
func newMountCmd(fl *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mount [flags] MOUNTPOINT",
		Short: "Mount the table as a filesystem",
		Long: `Mounts the configured table at MOUNTPOINT and serves until the process
is interrupted or the filesystem is unmounted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mountpoint := args[0]

			store, cfg, err := openStore(cmd, fl)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("mounting table",
				"backend", cfg.Backend, "database", cfg.Database,
				"table", cfg.Table, "mountpoint", mountpoint)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- fuse.Mount(mountpoint, store, slog.Default())
			}()

			select {
			case err := <-serveErr:
				return err
			case <-ctx.Done():
				// restore default signal handling so a second
				// interrupt can still kill a stuck unmount
				stop()
				slog.Info("unmounting", "mountpoint", mountpoint)
				if err := fuse.Unmount(mountpoint); err != nil {
					slog.Warn("unmount failed, retry with fusermount -u",
						"mountpoint", mountpoint, "error", err)
				}
				return <-serveErr
			}
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowfs/rowfs/pkg/rowpath"
)

// newLsCmd lists the rows a mount would serve, without mounting.
func newLsCmd(fl *rootFlags) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List row names without mounting",
		Long: `Lists the names the mounted directory would contain, in the same
order. With -l each line is prefixed with the content's byte size;
names that are not decimal strings get "-" since they cannot be
served as files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, fl)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return store.ForEachName(ctx, func(name string) error {
				if !long {
					fmt.Fprintln(out, name)
					return nil
				}
				if !rowpath.ValidKey(name) {
					fmt.Fprintf(out, "%12s  %s\n", "-", name)
					return nil
				}
				size, found, err := store.SizeOf(ctx, name)
				if err != nil {
					return err
				}
				if !found {
					// row vanished between the listing and the size query
					return nil
				}
				fmt.Fprintf(out, "%12d  %s\n", size, name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "include content byte sizes")
	return cmd
}

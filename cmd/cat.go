package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rowfs/rowfs/pkg/fserr"
	"github.com/rowfs/rowfs/pkg/rowpath"
)

// newCatCmd prints one row's content, addressed by filesystem path.
func newCatCmd(fl *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cat PATH",
		Short: "Print one row's content without mounting",
		Long: `Prints the content of the row addressed by PATH, where PATH is what
the mounted filesystem would serve (for example /42).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := rowpath.Parse(args[0])
			switch p.Kind {
			case rowpath.Root:
				return fserr.IsDirectory("%s is the root directory", args[0])
			case rowpath.Invalid:
				return fserr.InvalidPath("%q does not address a row (want /<digits>)", args[0])
			}

			store, _, err := openStore(cmd, fl)
			if err != nil {
				return err
			}
			defer store.Close()

			data, found, err := store.ContentOf(cmd.Context(), p.Key)
			if err != nil {
				return err
			}
			if !found {
				return fserr.NotFound("no row named %s", p.Key)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

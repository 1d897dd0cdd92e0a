package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPathsCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print where confsync keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "config dir\t%s\n", a.paths.ConfigDir)
			fmt.Fprintf(tw, "data dir\t%s\n", a.paths.DataDir)
			fmt.Fprintf(tw, "config file\t%s\n", a.store.Path())
			fmt.Fprintf(tw, "repository root\t%s\n", a.tree.Root)
			fmt.Fprintf(tw, "log file\t%s\n", a.paths.LogFile())
			return tw.Flush()
		},
	}
}

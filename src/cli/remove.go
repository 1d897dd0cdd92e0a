package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newRemoveCmd(stdout, stderr io.Writer) *cobra.Command {
	var byPath bool
	cmd := &cobra.Command{
		Use:   "remove <alias|path>",
		Short: "Stop tracking a file",
		Long: "Remove an alias from the registry. Repository copies and their history\n" +
			"are kept; use `confsync delete` to purge them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireInit(); err != nil {
				return err
			}

			alias := args[0]
			if byPath {
				alias, err = a.store.AliasFor(args[0])
				if err != nil {
					return err
				}
			}
			if err := a.store.RemoveTracking(alias); err != nil {
				a.diag.Errorf("REMOVE", "", "remove %q failed: %v", alias, err)
				return err
			}

			a.ui.Successf("removed %q", alias)
			a.diag.Infof("REMOVE", "", "alias %q removed", alias)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byPath, "path", false, "Treat the argument as a tracked path instead of an alias")
	return cmd
}

package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"confsync/src/backup"
)

func newAddCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <alias> <path>",
		Short: "Track a configuration file and take its first backup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireInit(); err != nil {
				return err
			}

			alias, path := args[0], args[1]
			canonical, err := a.store.AddTracking(alias, path)
			if err != nil {
				a.diag.Errorf("ADD", "", "add %q failed: %v", alias, err)
				return err
			}

			_, profile, err := a.loadConfig()
			if err != nil {
				return err
			}
			res, err := backup.File(a.tree, profile, alias, canonical, time.Now(), backup.Options{
				Force:    true,
				Progress: a.progressOut(),
			})
			if err != nil {
				a.diag.Errorf("ADD", profile, "first backup of %q failed: %v", alias, err)
				return err
			}

			a.ui.Successf("added %q tracking %s", alias, a.ui.Path(canonical))
			a.ui.Infof("backed up %s (%d bytes)", alias, res.Bytes)
			a.diag.Infof("ADD", profile, "tracking %s as %q", canonical, alias)
			return nil
		},
	}
	return cmd
}

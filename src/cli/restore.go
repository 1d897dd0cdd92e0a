package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"confsync/src/errdefs"
	"confsync/src/restore"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	var to string
	var overwrite, dryRun bool
	cmd := &cobra.Command{
		Use:   "restore <alias>",
		Short: "Copy the repository version of a file back into place",
		Long: "Restore the backed-up copy of an alias to its tracked location, or to\n" +
			"--to. An existing destination is never overwritten unless --overwrite\n" +
			"is given.",
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
			cfg, profile, err := a.loadConfig()
			if err != nil {
				return err
			}

			alias := args[0]
			dest := to
			if dest == "" {
				var ok bool
				dest, ok = cfg.Tracking.Files[alias]
				if !ok {
					a.diag.Warnf("RESTORE", profile, "alias %q not tracked and no --to given", alias)
					return errdefs.NotFound("alias %q (give --to for untracked aliases)", alias)
				}
			}

			if dryRun {
				data, err := a.tree.DataFile(profile, alias)
				if err != nil {
					return err
				}
				a.ui.Infof("would restore %s from %s to %s", alias, a.ui.Path(data), a.ui.Path(dest))
				return nil
			}

			res, err := restore.File(a.tree, profile, alias, dest, restore.Options{
				Overwrite: overwrite,
				Progress:  a.progressOut(),
			})
			if err != nil {
				if errors.Is(err, errdefs.ErrWouldOverwrite) {
					a.ui.Errorf("%s exists; pass --overwrite to replace it", dest)
				}
				a.diag.Errorf("RESTORE", profile, "%s: %v", alias, err)
				return err
			}

			a.ui.Successf("restored %s to %s (%d bytes)", alias, a.ui.Path(res.Dest), res.Bytes)
			a.diag.Infof("RESTORE", profile, "restored %s from %s to %s", alias, res.From, res.Dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Restore to this path instead of the tracked location")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the destination if it exists")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be restored without copying")
	return cmd
}

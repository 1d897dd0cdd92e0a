package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"confsync/src/errdefs"
	"confsync/src/gitvcs"
)

func newDeleteCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the config file or the backup repository",
	}
	cmd.AddCommand(newDeleteConfigCmd(stdout, stderr))
	cmd.AddCommand(newDeleteLocalCmd(stdout, stderr))
	cmd.AddCommand(newDeleteRemoteCmd(stdout, stderr))
	cmd.AddCommand(newDeleteAllCmd(stdout, stderr))
	return cmd
}

// confirmDelete prompts unless --force or the global --yes was given.
func confirmDelete(cmd *cobra.Command, a *app, force bool, question string) (bool, error) {
	opts := a.safety()
	opts.Yes = opts.Yes || force
	ok, err := opts.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question)
	if err != nil {
		return false, err
	}
	if !ok {
		a.ui.Infof("aborted")
	}
	return ok, nil
}

func newDeleteConfigCmd(stdout, stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Delete the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if !a.store.Exists() {
				a.ui.Infof("no config file found")
				return nil
			}
			ok, err := confirmDelete(cmd, a, force, "Delete the config file? Tracked aliases will be forgotten.")
			if err != nil || !ok {
				return err
			}
			if err := os.Remove(a.store.Path()); err != nil {
				return errdefs.IO(err, "delete config")
			}
			a.ui.Successf("config deleted")
			a.diag.Infof("DELETE", "", "config file removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}

func newDeleteLocalCmd(stdout, stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Delete the profile's local repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			_, profile, err := a.loadConfig()
			if err != nil {
				return err
			}
			return deleteLocalRepo(cmd, a, profile, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}

func deleteLocalRepo(cmd *cobra.Command, a *app, profile string, force bool) error {
	dir := a.tree.ProfileDir(profile)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return errdefs.NotFound("repository for profile %q", profile)
	}
	ok, err := confirmDelete(cmd, a, force, "Delete the local repository for profile \""+profile+"\"? All backups and history in it are lost.")
	if err != nil || !ok {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return errdefs.IO(err, "delete repository %s", dir)
	}
	a.ui.Successf("local repository deleted: %s", a.ui.Path(dir))
	a.diag.Infof("DELETE", profile, "local repository removed")
	return nil
}

func newDeleteRemoteCmd(stdout, stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Delete the main branch from the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			cfg, profile, err := a.loadConfig()
			if err != nil {
				return err
			}
			return deleteRemoteBranch(cmd, a, cfg.Storage.Local, profile, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}

func deleteRemoteBranch(cmd *cobra.Command, a *app, localOnly bool, profile string, force bool) error {
	if localOnly {
		a.ui.Warnf("storage is local only; no remote to delete")
		return nil
	}
	if !gitvcs.Installed() {
		return errdefs.NotFound("git binary")
	}
	ok, err := confirmDelete(cmd, a, force, "Delete the main branch on origin?")
	if err != nil || !ok {
		return err
	}
	if err := a.git(profile).DeleteRemoteBranch(cmdContext(cmd)); err != nil {
		a.diag.Errorf("DELETE", profile, "remote delete failed: %v", err)
		return err
	}
	a.ui.Successf("remote branch deleted")
	a.diag.Infof("DELETE", profile, "remote main branch removed")
	return nil
}

func newDeleteAllCmd(stdout, stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Delete the repository (local and remote) and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			cfg, profile, err := a.loadConfig()
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, a, force, "Delete ALL confsync data (repository, remote branch, config)?")
			if err != nil || !ok {
				return err
			}
			// One confirmation covers the whole teardown.
			if !cfg.Storage.Local {
				if err := deleteRemoteBranch(cmd, a, false, profile, true); err != nil {
					a.ui.Warnf("remote delete failed: %v", err)
				}
			}
			if err := deleteLocalRepo(cmd, a, profile, true); err != nil && !errors.Is(err, errdefs.ErrNotFound) {
				return err
			}
			if a.store.Exists() {
				if err := os.Remove(a.store.Path()); err != nil {
					return errdefs.IO(err, "delete config")
				}
			}
			a.ui.Successf("all confsync data deleted")
			a.diag.Infof("DELETE", profile, "full teardown")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}

package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"confsync/src/backup"
	"confsync/src/config"
	"confsync/src/gitvcs"
)

func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var local, force bool
	cmd := &cobra.Command{
		Use:   "init [repo-url]",
		Short: "Create the config file and the backup repository",
		Long: "Create the confsync config file and initialise a git repository for the\n" +
			"active profile. With a repo-url backups can be pushed to that remote;\n" +
			"without one (or with --local) the repository stays on this machine.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			repoURL := ""
			if len(args) == 1 {
				repoURL = args[0]
			}
			if repoURL == "" {
				local = true
			}

			if a.store.Exists() && !force {
				a.ui.Warnf("already initialised; use --force to start over")
				a.diag.Warnf("INIT", "", "init refused, config exists at %s", a.store.Path())
				return nil
			}

			cfg := config.Default(a.store.Path())
			cfg.Storage.Local = local
			cfg.Storage.RepoURL = repoURL
			if a.profile != "" {
				cfg.Storage.Profile = a.profile
			}
			profile := cfg.ActiveProfile(a.profile)

			if err := a.store.Save(cfg); err != nil {
				return err
			}

			if !gitvcs.Installed() {
				a.ui.Warnf("git not found on PATH; repository versioning is disabled")
				a.diag.Warnf("INIT", profile, "git binary missing, skipped repo init")
			} else {
				remote := ""
				if !local {
					remote = repoURL
				}
				if err := a.git(profile).Init(cmdContext(cmd), remote); err != nil {
					a.diag.Errorf("INIT", profile, "repo init failed: %v", err)
					return err
				}
			}

			// First backup: the registry document itself, under its seeded
			// alias. Not fatal; the next backup retries.
			if _, err := backup.File(a.tree, profile, config.SelfAlias, a.store.Path(), time.Now(), backup.Options{Force: true}); err != nil {
				a.ui.Warnf("could not back up the config file: %v", err)
				a.diag.Errorf("INIT", profile, "config self-backup failed: %v", err)
			}

			a.ui.Successf("initialised profile %q", profile)
			a.ui.Infof("config: %s", a.ui.Path(a.store.Path()))
			if local {
				a.ui.Infof("repository: %s (local only)", a.ui.Path(a.tree.ProfileDir(profile)))
			} else {
				a.ui.Infof("remote: %s", repoURL)
			}
			a.ui.Infof("track a file with %s", a.ui.Muted("confsync add <alias> <path>"))
			a.diag.Infof("INIT", profile, "initialised, local=%v", local)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "Keep the repository local even when a repo-url is given")
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialise over an existing config")
	return cmd
}

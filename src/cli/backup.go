package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"confsync/src/backup"
	"confsync/src/errdefs"
	"confsync/src/gitvcs"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	var message string
	var push, force bool
	cmd := &cobra.Command{
		Use:   "backup [alias]",
		Short: "Copy changed tracked files into the repository and commit",
		Long: "Back up one alias, or every tracked file when no alias is given. Files\n" +
			"whose repository copy is already identical are skipped. Performed copies\n" +
			"are committed; --push also synchronises with the remote.",
		Args: cobra.MaximumNArgs(1),
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

			var aliases []string
			if len(args) == 1 {
				alias := args[0]
				if _, ok := cfg.Tracking.Files[alias]; !ok {
					a.diag.Warnf("BACKUP", profile, "alias %q not tracked", alias)
					return errdefs.NotFound("alias %q", alias)
				}
				aliases = []string{alias}
			} else {
				aliases = sortedAliases(cfg.Tracking.Files)
				if len(aliases) == 0 {
					a.ui.Infof("nothing tracked; add files with `confsync add <alias> <path>`")
					return nil
				}
			}

			now := time.Now()
			var copied []string
			failed := 0
			for _, alias := range aliases {
				res, err := backup.File(a.tree, profile, alias, cfg.Tracking.Files[alias], now, backup.Options{
					Force:    force,
					Progress: a.progressOut(),
				})
				if err != nil {
					failed++
					a.ui.Warnf("%s: %v", alias, err)
					a.diag.Errorf("BACKUP", profile, "%s: %v", alias, err)
					continue
				}
				if res.Skipped {
					a.ui.Infof("%s already backed up", alias)
					a.diag.Infof("BACKUP", profile, "%s unchanged, skipped", alias)
					continue
				}
				copied = append(copied, alias)
				a.ui.Successf("backed up %s (%d bytes)", alias, res.Bytes)
				a.diag.Infof("BACKUP", profile, "copied %s from %s", alias, res.Source)
			}

			if len(copied) > 0 {
				if err := commitAndMaybePush(cmd, a, cfg.Storage.Local, profile, message, copied, push); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d backups failed", failed, len(aliases))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (defaults to the changed aliases)")
	cmd.Flags().BoolVarP(&push, "push", "p", false, "Push to the remote after committing")
	cmd.Flags().BoolVar(&force, "force", false, "Copy even when the repository copy is identical")
	return cmd
}

// commitAndMaybePush records copied backups in git. Pushing is skipped for
// local-only repositories regardless of the flag.
func commitAndMaybePush(cmd *cobra.Command, a *app, localOnly bool, profile, message string, copied []string, push bool) error {
	if !gitvcs.Installed() {
		a.ui.Warnf("git not found on PATH; backup left uncommitted")
		a.diag.Warnf("COMMIT", profile, "git binary missing")
		return nil
	}
	if message == "" {
		message = strings.Join(copied, ", ")
	}
	g := a.git(profile)
	ctx := cmdContext(cmd)
	if err := g.CommitAll(ctx, message); err != nil {
		a.diag.Errorf("COMMIT", profile, "%v", err)
		return err
	}
	a.diag.Infof("COMMIT", profile, "committed: %s", message)
	if push && !localOnly {
		if err := g.Push(ctx); err != nil {
			a.diag.Errorf("PUSH", profile, "%v", err)
			return err
		}
		a.ui.Successf("pushed to origin")
		a.diag.Infof("PUSH", profile, "pushed main to origin")
	}
	return nil
}

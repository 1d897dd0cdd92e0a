package cli

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"confsync/src/backup"
	"confsync/src/errdefs"
	"confsync/src/watch"
)

func newWatchCmd(stdout, stderr io.Writer) *cobra.Command {
	var debounceMS int
	var push bool
	cmd := &cobra.Command{
		Use:   "watch [alias]",
		Short: "Back up tracked files automatically when they change",
		Long: "Watch one alias, or every tracked file, and run a backup plus commit\n" +
			"whenever the files stop changing for the debounce interval. Runs until\n" +
			"interrupted.",
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

			files := cfg.Tracking.Files
			if len(args) == 1 {
				path, ok := files[args[0]]
				if !ok {
					return errdefs.NotFound("alias %q", args[0])
				}
				files = map[string]string{args[0]: path}
			}

			w, err := watch.New(files, watch.Options{Debounce: time.Duration(debounceMS) * time.Millisecond})
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.ui.Infof("watching %d file(s) in profile %q; press Ctrl-C to stop", len(files), profile)
			a.diag.Infof("WATCH", profile, "watching %d files", len(files))

			runErr := w.Run(ctx, func(aliases []string) {
				now := time.Now()
				var copied []string
				for _, alias := range aliases {
					res, err := backup.File(a.tree, profile, alias, files[alias], now, backup.Options{})
					if err != nil {
						a.ui.Warnf("%s: %v", alias, err)
						a.diag.Errorf("WATCH", profile, "%s: %v", alias, err)
						continue
					}
					if res.Skipped {
						a.diag.Debugf("WATCH", profile, "%s unchanged after event", alias)
						continue
					}
					copied = append(copied, alias)
					a.ui.Successf("backed up %s (%d bytes)", alias, res.Bytes)
				}
				if len(copied) > 0 {
					if err := commitAndMaybePush(cmd, a, cfg.Storage.Local, profile, "", copied, push); err != nil {
						a.ui.Warnf("commit failed: %v", err)
					}
				}
			})
			if runErr != nil {
				a.diag.Errorf("WATCH", profile, "watcher stopped: %v", runErr)
				return runErr
			}
			a.ui.Infof("watch stopped")
			return nil
		},
	}
	cmd.Flags().IntVar(&debounceMS, "debounce", 2000, "Quiet period in milliseconds before changed files are backed up")
	cmd.Flags().BoolVarP(&push, "push", "p", false, "Push after each automatic commit")
	return cmd
}

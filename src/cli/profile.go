package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newProfileCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and switch repository profiles",
	}
	cmd.AddCommand(newProfileListCmd(stdout, stderr))
	cmd.AddCommand(newProfileUseCmd(stdout, stderr))
	return cmd
}

func newProfileListCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles found in the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireInit(); err != nil {
				return err
			}
			_, active, err := a.loadConfig()
			if err != nil {
				return err
			}

			profiles, err := a.tree.Profiles()
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				profiles = []string{active}
			}
			seen := false
			for _, p := range profiles {
				marker := " "
				if p == active {
					marker = "*"
					seen = true
				}
				fmt.Fprintf(stdout, "%s %s\n", marker, p)
			}
			if !seen {
				// Active profile has no repository directory yet.
				fmt.Fprintf(stdout, "* %s\n", active)
			}
			return nil
		},
	}
}

func newProfileUseCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a profile the default for future commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireInit(); err != nil {
				return err
			}
			cfg, err := a.store.Load()
			if err != nil {
				return err
			}

			cfg.Storage.Profile = args[0]
			if err := a.store.Save(cfg); err != nil {
				return err
			}
			a.ui.Successf("profile set to %q", args[0])
			a.diag.Infof("PROFILE", args[0], "active profile changed")
			return nil
		},
	}
}

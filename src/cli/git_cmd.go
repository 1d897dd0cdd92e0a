package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newGitCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git <args...>",
		Short: "Run a git command inside the profile's repository",
		Long: "Forward a command to git with the working directory set to the active\n" +
			"profile's repository, e.g. `confsync git log --oneline`.",
		// Flags belong to git here, not to confsync.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no git command given")
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireInit(); err != nil {
				return err
			}
			_, profile, err := a.loadConfig()
			if err != nil {
				return err
			}

			out, err := a.git(profile).Forward(cmdContext(cmd), args...)
			if err != nil {
				a.diag.Errorf("GIT", profile, "git %v failed: %v", args, err)
				return err
			}
			if out != "" {
				fmt.Fprint(stdout, out)
			}
			a.diag.Infof("GIT", profile, "git %v", args)
			return nil
		},
	}
	return cmd
}

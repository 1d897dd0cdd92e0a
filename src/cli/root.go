package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the confsync CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "confsync",
		Short:         "Back up, version, and restore configuration files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newInitCmd(stdout, stderr))
	cmd.AddCommand(newAddCmd(stdout, stderr))
	cmd.AddCommand(newRemoveCmd(stdout, stderr))
	cmd.AddCommand(newBackupCmd(stdout, stderr))
	cmd.AddCommand(newRestoreCmd(stdout, stderr))
	cmd.AddCommand(newListCmd(stdout, stderr))
	cmd.AddCommand(newHistoryCmd(stdout, stderr))
	cmd.AddCommand(newStatusCmd(stdout, stderr))
	cmd.AddCommand(newConfigCmd(stdout, stderr))
	cmd.AddCommand(newProfileCmd(stdout, stderr))
	cmd.AddCommand(newGitCmd(stdout, stderr))
	cmd.AddCommand(newDeleteCmd(stdout, stderr))
	cmd.AddCommand(newPathsCmd(stdout, stderr))
	cmd.AddCommand(newWatchCmd(stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

package cli

import (
	"github.com/spf13/cobra"
)

// addGlobalFlags adds the persistent flags shared by every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("profile", "P", "", "Profile to operate on (defaults to the configured profile)")
	cmd.PersistentFlags().BoolP("verbose", "V", false, "Mirror diagnostics to stderr and show copy progress")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
}

package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"confsync/src/ux"
)

func newConfigCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the confsync config file",
	}
	cmd.AddCommand(newConfigShowCmd(stdout, stderr))
	cmd.AddCommand(newConfigEditCmd(stdout, stderr))
	cmd.AddCommand(newConfigPathCmd(stdout, stderr))
	return cmd
}

func newConfigShowCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the config file (in $PAGER on a terminal)",
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

			// Page only for interactive sessions; piped output gets the raw
			// document.
			if f, ok := stdout.(*os.File); ok && f == os.Stdout && ux.IsTerminal(f) {
				pager := os.Getenv("PAGER")
				if pager == "" {
					pager = "less"
				}
				c := exec.CommandContext(cmdContext(cmd), pager, a.store.Path())
				c.Stdin = os.Stdin
				c.Stdout = os.Stdout
				c.Stderr = os.Stderr
				if err := c.Run(); err != nil {
					return fmt.Errorf("run pager %s: %w", pager, err)
				}
				return nil
			}

			data, err := os.ReadFile(a.store.Path())
			if err != nil {
				return err
			}
			_, err = stdout.Write(data)
			return err
		},
	}
}

func newConfigEditCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the config file in $EDITOR",
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

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "nano"
			}
			c := exec.CommandContext(cmdContext(cmd), editor, a.store.Path())
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				return fmt.Errorf("run editor %s: %w", editor, err)
			}

			// Surface syntax errors now rather than on the next command.
			if _, err := a.store.Load(); err != nil {
				a.ui.Errorf("config is no longer valid: %v", err)
				return err
			}
			a.diag.Infof("CONFIG", "", "config edited with %s", editor)
			return nil
		},
	}
}

func newConfigPathCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			fmt.Fprintln(stdout, a.store.Path())
			return nil
		},
	}
}

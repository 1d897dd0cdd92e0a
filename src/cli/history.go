package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"confsync/src/errdefs"
	"confsync/src/history"
)

type historyRow struct {
	Time   string `json:"time,omitempty"`
	Source string `json:"source"`
}

func newHistoryCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "history <alias>",
		Short: "Show when an alias was backed up and from where",
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
			cfg, profile, err := a.loadConfig()
			if err != nil {
				return err
			}

			alias := args[0]
			if _, tracked := cfg.Tracking.Files[alias]; !tracked {
				// Removed aliases may still have repository history; only
				// a name the registry has never seen is an error.
				if _, repoErr := a.tree.DataFile(profile, alias); repoErr != nil {
					return errdefs.NotFound("alias %q", alias)
				}
			}

			sidecar, err := a.tree.SidecarFile(profile, alias)
			if errors.Is(err, errdefs.ErrNotFound) {
				a.ui.Infof("no backups of %s yet", alias)
				return nil
			}
			if err != nil {
				return err
			}
			entries, err := history.Read(sidecar)
			if err != nil {
				return err
			}

			switch output {
			case "json":
				rows := make([]historyRow, 0, len(entries))
				for _, e := range entries {
					row := historyRow{Source: e.Source}
					if !e.Time.IsZero() {
						row.Time = e.Time.Format(history.TimeLayout)
					}
					rows = append(rows, row)
				}
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "table", "":
				for _, e := range entries {
					fmt.Fprintln(stdout, e.String())
				}
				return nil
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"confsync/src/errdefs"
	"confsync/src/fsutil"
)

type statusRow struct {
	Alias string `json:"alias"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// Status states, from healthy to broken.
const (
	stateUpToDate    = "up to date"
	stateChanged     = "changed"
	stateNotBackedUp = "not backed up"
	stateMissing     = "missing"
)

func newStatusCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare tracked files against their repository copies",
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
			cfg, profile, err := a.loadConfig()
			if err != nil {
				return err
			}

			rows := make([]statusRow, 0, len(cfg.Tracking.Files))
			for _, alias := range sortedAliases(cfg.Tracking.Files) {
				path := cfg.Tracking.Files[alias]
				state, err := aliasState(a, profile, alias, path)
				if err != nil {
					return err
				}
				rows = append(rows, statusRow{Alias: alias, Path: path, State: state})
			}

			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "table", "":
				tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ALIAS\tSTATE\tPATH")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Alias, r.State, r.Path)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

// aliasState classifies one tracked file against its repository copy.
func aliasState(a *app, profile, alias, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return stateMissing, nil
	}
	data, err := a.tree.DataFile(profile, alias)
	if errors.Is(err, errdefs.ErrNotFound) {
		return stateNotBackedUp, nil
	}
	if err != nil {
		return "", err
	}
	same, err := fsutil.SameContents(path, data)
	if err != nil {
		return "", err
	}
	if same {
		return stateUpToDate, nil
	}
	return stateChanged, nil
}

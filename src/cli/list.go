package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type listRow struct {
	Alias string `json:"alias"`
	Path  string `json:"path"`
}

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked files",
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
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}

			rows := make([]listRow, 0, len(cfg.Tracking.Files))
			for _, alias := range sortedAliases(cfg.Tracking.Files) {
				rows = append(rows, listRow{Alias: alias, Path: cfg.Tracking.Files[alias]})
			}

			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "table", "":
				tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ALIAS\tPATH")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\n", r.Alias, r.Path)
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

// Package safety guards destructive commands behind an interactive
// confirmation that --yes can bypass.
package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options mirror the global CLI flags that decide whether a prompt is shown.
type Options struct {
	// Yes answers every prompt affirmatively without asking.
	Yes bool
	// DryRun declines every prompt so nothing destructive runs.
	DryRun bool
}

// Confirm asks question on out and reads a y/N answer from in. DryRun
// declines without asking, Yes accepts without asking.
func (o Options) Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if o.DryRun {
		return false, nil
	}
	if o.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}

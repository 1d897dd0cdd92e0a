// Package history reads and appends the per-alias backup journal. Each data
// file in the repository has a sidecar whose lines record when a backup was
// taken and where the bytes came from:
//
//	[2024-03-01 09:15:02] /home/me/.config/nvim/init.lua
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"confsync/src/errdefs"
)

// TimeLayout is the timestamp format used inside sidecar lines, in local
// time.
const TimeLayout = "2006-01-02 15:04:05"

// Entry is one backup event. Lines that cannot be parsed keep their raw text
// in Source with a zero Time, so hand-edited sidecars survive a round trip.
type Entry struct {
	Time   time.Time
	Source string
}

// String renders the entry in sidecar line format.
func (e Entry) String() string {
	if e.Time.IsZero() {
		return e.Source
	}
	return fmt.Sprintf("[%s] %s", e.Time.Format(TimeLayout), e.Source)
}

// Append records a backup of source taken at now, creating the sidecar on
// first use. Existing lines are never rewritten.
func Append(sidecar, source string, now time.Time) error {
	f, err := os.OpenFile(sidecar, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errdefs.IO(err, "open sidecar %s", sidecar)
	}
	defer f.Close()
	entry := Entry{Time: now, Source: source}
	if _, err := fmt.Fprintln(f, entry.String()); err != nil {
		return errdefs.IO(err, "append to sidecar %s", sidecar)
	}
	return nil
}

// Read returns the sidecar's entries oldest first. A missing sidecar yields
// ErrNotFound.
func Read(sidecar string) ([]Entry, error) {
	f, err := os.Open(sidecar)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errdefs.NotFound("sidecar %s", sidecar)
	}
	if err != nil {
		return nil, errdefs.IO(err, "open sidecar %s", sidecar)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errdefs.IO(err, "read sidecar %s", sidecar)
	}
	return entries, nil
}

func parseLine(line string) Entry {
	if !strings.HasPrefix(line, "[") {
		return Entry{Source: line}
	}
	stamp, source, found := strings.Cut(line[1:], "] ")
	if !found {
		return Entry{Source: line}
	}
	ts, err := time.ParseInLocation(TimeLayout, stamp, time.Local)
	if err != nil {
		return Entry{Source: line}
	}
	return Entry{Time: ts, Source: source}
}

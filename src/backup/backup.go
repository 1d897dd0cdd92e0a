// Package backup copies tracked files into the repository tree, skipping
// copies whose repository twin is already identical.
package backup

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"confsync/src/errdefs"
	"confsync/src/fsutil"
	"confsync/src/history"
	"confsync/src/repo"
)

// Options adjust a single backup run.
type Options struct {
	// Force copies even when the repository copy is identical.
	Force bool
	// Progress receives a percentage indicator during the copy. Nil keeps
	// the copy silent.
	Progress io.Writer
}

// Result describes what one backup did.
type Result struct {
	Alias   string
	Source  string
	Dest    string
	Bytes   int64
	Skipped bool // repository copy was already identical
}

// File backs up the tracked file at source under profile/alias. The data
// file keeps the source's base name; every performed copy appends one line
// to the history sidecar. Unchanged sources are detected by size, then by a
// chunked byte comparison, and reported via Result.Skipped.
func File(tree repo.Tree, profile, alias, source string, now time.Time, opts Options) (Result, error) {
	res := Result{Alias: alias, Source: source}

	fi, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return res, errdefs.NotFound("tracked file %q", source)
	}
	if err != nil {
		return res, errdefs.IO(err, "stat %s", source)
	}
	if !fi.Mode().IsRegular() {
		return res, errdefs.NotAFile("%q", source)
	}

	dest := tree.DataPath(profile, alias, filepath.Base(source))
	res.Dest = dest

	if !opts.Force {
		if _, err := os.Stat(dest); err == nil {
			same, err := fsutil.SameContents(source, dest)
			if err != nil {
				return res, err
			}
			if same {
				res.Skipped = true
				return res, nil
			}
		}
	}

	n, err := fsutil.CopyFile(dest, source, opts.Progress)
	if err != nil {
		return res, err
	}
	res.Bytes = n

	if err := removeStale(tree.AliasDir(profile, alias), filepath.Base(source)); err != nil {
		return res, err
	}
	if err := history.Append(repo.Sidecar(dest), source, now); err != nil {
		return res, err
	}
	return res, nil
}

// removeStale drops data files and sidecars left behind by an earlier base
// name, keeping the one-data-file-per-alias invariant after an alias is
// re-pointed at a different path.
func removeStale(aliasDir, keepBase string) error {
	entries, err := os.ReadDir(aliasDir)
	if err != nil {
		return errdefs.IO(err, "scan %s", aliasDir)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if name == keepBase || name == keepBase+repo.SidecarExt {
			continue
		}
		if err := os.Remove(filepath.Join(aliasDir, name)); err != nil {
			return errdefs.IO(err, "remove stale %s", name)
		}
	}
	return nil
}

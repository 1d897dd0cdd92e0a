// Package restore copies repository files back to their tracked locations.
package restore

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"confsync/src/errdefs"
	"confsync/src/fsutil"
	"confsync/src/repo"
)

// Options adjust a single restore run.
type Options struct {
	// Overwrite allows replacing an existing destination file.
	Overwrite bool
	// Progress receives a percentage indicator during the copy.
	Progress io.Writer
}

// Result describes what one restore did.
type Result struct {
	Alias string
	From  string
	Dest  string
	Bytes int64
}

// File copies the repository's current copy of alias to dest. Without
// Options.Overwrite an existing destination, even a directory or dangling
// symlink, aborts the restore with ErrWouldOverwrite.
func File(tree repo.Tree, profile, alias, dest string, opts Options) (Result, error) {
	res := Result{Alias: alias, Dest: dest}

	data, err := tree.DataFile(profile, alias)
	if err != nil {
		return res, err
	}
	res.From = data

	if !opts.Overwrite {
		if _, err := os.Lstat(dest); err == nil {
			return res, errdefs.WouldOverwrite("%q", dest)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return res, errdefs.IO(err, "stat %s", dest)
		}
	}

	n, err := fsutil.CopyFile(dest, data, opts.Progress)
	if err != nil {
		return res, err
	}
	res.Bytes = n
	return res, nil
}

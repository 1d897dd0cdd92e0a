// Package repo resolves the on-disk backup repository layout:
//
//	<root>/<profile>/<alias>/<basename>      current backed-up copy
//	<root>/<profile>/<alias>/<basename>.cmt  append-only history sidecar
//
// Each profile directory doubles as a git working tree, so hidden entries
// such as .git are skipped everywhere.
package repo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"confsync/src/errdefs"
)

// SidecarExt marks history sidecars next to their data files.
const SidecarExt = ".cmt"

// Tree locates files inside a repository root. The zero value is unusable;
// construct one with NewTree.
type Tree struct {
	Root string
}

// NewTree returns a Tree rooted at root. The directory does not have to
// exist yet; backups create it on demand.
func NewTree(root string) Tree { return Tree{Root: root} }

// ProfileDir is the directory of one profile, which is also the git working
// tree for that profile.
func (t Tree) ProfileDir(profile string) string {
	return filepath.Join(t.Root, profile)
}

// AliasDir is the directory holding one alias's data file and sidecar.
func (t Tree) AliasDir(profile, alias string) string {
	return filepath.Join(t.Root, profile, alias)
}

// DataPath is where the backup of a file with the given base name lives.
func (t Tree) DataPath(profile, alias, basename string) string {
	return filepath.Join(t.Root, profile, alias, basename)
}

// Sidecar returns the history sidecar path for a data file.
func Sidecar(dataPath string) string { return dataPath + SidecarExt }

// DataFile locates the backed-up copy for alias. It returns ErrNotFound when
// the alias directory is missing or holds no data file. Should hand edits
// ever leave several data files behind, the lexicographically first wins.
func (t Tree) DataFile(profile, alias string) (string, error) {
	dir := t.AliasDir(profile, alias)
	names, err := readFileNames(dir)
	if os.IsNotExist(err) {
		return "", errdefs.NotFound("no backup of %q in profile %q", alias, profile)
	}
	if err != nil {
		return "", errdefs.IO(err, "scan %s", dir)
	}
	for _, name := range names {
		if !strings.HasSuffix(name, SidecarExt) {
			return filepath.Join(dir, name), nil
		}
	}
	return "", errdefs.NotFound("no backup of %q in profile %q", alias, profile)
}

// SidecarFile locates the history sidecar for alias, with the same not-found
// semantics as DataFile.
func (t Tree) SidecarFile(profile, alias string) (string, error) {
	dir := t.AliasDir(profile, alias)
	names, err := readFileNames(dir)
	if os.IsNotExist(err) {
		return "", errdefs.NotFound("no history for %q in profile %q", alias, profile)
	}
	if err != nil {
		return "", errdefs.IO(err, "scan %s", dir)
	}
	for _, name := range names {
		if strings.HasSuffix(name, SidecarExt) {
			return filepath.Join(dir, name), nil
		}
	}
	return "", errdefs.NotFound("no history for %q in profile %q", alias, profile)
}

// Profiles lists the profile directories under the root, sorted.
func (t Tree) Profiles() ([]string, error) {
	names, err := readDirNames(t.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errdefs.IO(err, "scan %s", t.Root)
	}
	return names, nil
}

// Aliases lists the alias directories of one profile, sorted.
func (t Tree) Aliases(profile string) ([]string, error) {
	dir := t.ProfileDir(profile)
	names, err := readDirNames(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errdefs.IO(err, "scan %s", dir)
	}
	return names, nil
}

func readDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func readFileNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

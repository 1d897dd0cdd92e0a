package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"confsync/src/errdefs"
	"confsync/src/repo"
)

func seed(t *testing.T, root string, parts ...string) string {
	t.Helper()
	full := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	return full
}

func TestLayoutPaths(t *testing.T) {
	tree := repo.NewTree("/data/backups")
	require.Equal(t, "/data/backups/default", tree.ProfileDir("default"))
	require.Equal(t, "/data/backups/default/vim", tree.AliasDir("default", "vim"))
	require.Equal(t, "/data/backups/default/vim/vimrc", tree.DataPath("default", "vim", "vimrc"))
	require.Equal(t, "/data/backups/default/vim/vimrc.cmt", repo.Sidecar(tree.DataPath("default", "vim", "vimrc")))
}

func TestDataFileAndSidecar(t *testing.T) {
	root := t.TempDir()
	tree := repo.NewTree(root)
	data := seed(t, root, "default", "vim", "vimrc")
	sidecar := seed(t, root, "default", "vim", "vimrc.cmt")

	got, err := tree.DataFile("default", "vim")
	require.NoError(t, err)
	require.Equal(t, data, got)

	got, err = tree.SidecarFile("default", "vim")
	require.NoError(t, err)
	require.Equal(t, sidecar, got)
}

func TestDataFileMissingAlias(t *testing.T) {
	tree := repo.NewTree(t.TempDir())

	_, err := tree.DataFile("default", "ghost")
	require.ErrorIs(t, err, errdefs.ErrNotFound)

	_, err = tree.SidecarFile("default", "ghost")
	require.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestDataFileIgnoresSidecarOnly(t *testing.T) {
	root := t.TempDir()
	tree := repo.NewTree(root)
	seed(t, root, "default", "vim", "vimrc.cmt")

	_, err := tree.DataFile("default", "vim")
	require.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestProfilesAndAliasesSkipHiddenDirs(t *testing.T) {
	root := t.TempDir()
	tree := repo.NewTree(root)
	seed(t, root, "default", "vim", "vimrc")
	seed(t, root, "default", "zsh", "zshrc")
	seed(t, root, "work", "git", "gitconfig")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "default", ".git", "objects"), 0o755))

	profiles, err := tree.Profiles()
	require.NoError(t, err)
	require.Equal(t, []string{"default", "work"}, profiles)

	aliases, err := tree.Aliases("default")
	require.NoError(t, err)
	require.Equal(t, []string{"vim", "zsh"}, aliases)
}

func TestProfilesOnEmptyRoot(t *testing.T) {
	tree := repo.NewTree(filepath.Join(t.TempDir(), "missing"))

	profiles, err := tree.Profiles()
	require.NoError(t, err)
	require.Empty(t, profiles)

	aliases, err := tree.Aliases("default")
	require.NoError(t, err)
	require.Empty(t, aliases)
}

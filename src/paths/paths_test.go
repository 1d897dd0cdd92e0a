package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"confsync/src/paths"
)

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/tmp/confsync-conf")
	t.Setenv(paths.EnvDataDir, "/tmp/confsync-data")

	p, err := paths.Default()
	require.NoError(t, err)
	require.Equal(t, "/tmp/confsync-conf", p.ConfigDir)
	require.Equal(t, "/tmp/confsync-data", p.DataDir)
}

func TestDerivedPaths(t *testing.T) {
	p := paths.Provider{ConfigDir: "/cfg", DataDir: "/data"}
	require.Equal(t, filepath.Join("/cfg", "config.toml"), p.ConfigFile())
	require.Equal(t, filepath.Join("/data", "backups"), p.RepoRoot())
	require.Equal(t, filepath.Join("/data", "confsync.log"), p.LogFile())
}

func TestPlatformDefaultsAreUnderHome(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")

	p, err := paths.Default()
	require.NoError(t, err)
	require.Equal(t, "confsync", filepath.Base(p.ConfigDir))
	require.Equal(t, "confsync", filepath.Base(p.DataDir))
}

package history_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"confsync/src/errdefs"
	"confsync/src/history"
)

func TestAppendThenRead(t *testing.T) {
	sidecar := filepath.Join(t.TempDir(), "vimrc.cmt")
	first := time.Date(2024, 3, 1, 9, 15, 2, 0, time.Local)
	second := first.Add(26 * time.Hour)

	require.NoError(t, history.Append(sidecar, "/home/me/.vimrc", first))
	require.NoError(t, history.Append(sidecar, "/home/me/.vimrc", second))

	entries, err := history.Read(sidecar)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, first, entries[0].Time)
	require.Equal(t, second, entries[1].Time)
	require.Equal(t, "/home/me/.vimrc", entries[0].Source)
}

func TestLineFormat(t *testing.T) {
	e := history.Entry{
		Time:   time.Date(2024, 3, 1, 9, 15, 2, 0, time.Local),
		Source: "/etc/hosts",
	}
	require.Equal(t, "[2024-03-01 09:15:02] /etc/hosts", e.String())
}

func TestReadMissingSidecar(t *testing.T) {
	_, err := history.Read(filepath.Join(t.TempDir(), "absent.cmt"))
	require.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestReadKeepsUnparseableLinesVerbatim(t *testing.T) {
	sidecar := filepath.Join(t.TempDir(), "vimrc.cmt")
	raw := "[2024-03-01 09:15:02] /home/me/.vimrc\nmanual note about this backup\n[not a stamp] /x\n"
	require.NoError(t, os.WriteFile(sidecar, []byte(raw), 0o644))

	entries, err := history.Read(sidecar)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "manual note about this backup", entries[1].String())
	require.Equal(t, "[not a stamp] /x", entries[2].String())
	require.True(t, entries[1].Time.IsZero())
}

func TestReadSkipsBlankLines(t *testing.T) {
	sidecar := filepath.Join(t.TempDir(), "vimrc.cmt")
	raw := "[2024-03-01 09:15:02] /home/me/.vimrc\n\n\n[2024-03-02 10:00:00] /home/me/.vimrc\n"
	require.NoError(t, os.WriteFile(sidecar, []byte(raw), 0o644))

	entries, err := history.Read(sidecar)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestAppendPreservesExistingLines(t *testing.T) {
	sidecar := filepath.Join(t.TempDir(), "vimrc.cmt")
	require.NoError(t, os.WriteFile(sidecar, []byte("first line kept as-is\n"), 0o644))

	require.NoError(t, history.Append(sidecar, "/home/me/.vimrc", time.Now()))

	entries, err := history.Read(sidecar)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "first line kept as-is", entries[0].Source)
}

package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"confsync/src/cli"
	"confsync/src/paths"
)

// setHome points confsync at throwaway config/data directories and pins a
// git identity so commits made by the commands under test are hermetic.
func setHome(t *testing.T) (cfgDir, dataDir string) {
	t.Helper()
	base := t.TempDir()
	cfgDir = filepath.Join(base, "cfg")
	dataDir = filepath.Join(base, "data")
	t.Setenv(paths.EnvConfigDir, cfgDir)
	t.Setenv(paths.EnvDataDir, dataDir)
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)
	t.Setenv("GIT_AUTHOR_NAME", "confsync test")
	t.Setenv("GIT_AUTHOR_EMAIL", "confsync@example.invalid")
	t.Setenv("GIT_COMMITTER_NAME", "confsync test")
	t.Setenv("GIT_COMMITTER_EMAIL", "confsync@example.invalid")
	return cfgDir, dataDir
}

// run executes one confsync invocation against a fresh command tree.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	_, err = cmd.ExecuteC()
	return out.String(), errBuf.String(), err
}

// mustRun is run for invocations the test expects to succeed.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("confsync %s: %v (stderr: %s)", strings.Join(args, " "), err, errOut)
	}
	return out
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// trackedFile creates a source file and registers it under alias.
func trackedFile(t *testing.T, alias, contents string) (src string) {
	t.Helper()
	src = filepath.Join(t.TempDir(), alias+".conf")
	writeFile(t, src, contents)
	mustRun(t, "add", alias, src)
	canon, err := filepath.EvalSymlinks(src)
	if err != nil {
		t.Fatalf("eval symlinks %s: %v", src, err)
	}
	return canon
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

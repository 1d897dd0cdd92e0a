package cli_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"confsync/src/errdefs"
)

func TestRestoreCmd_PutsBackupBackInPlace(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")
	src := trackedFile(t, "app", "theme=dark\n")

	writeFile(t, src, "scrambled")
	out := mustRun(t, "restore", "app", "--overwrite")
	if !strings.Contains(out, "restored app") {
		t.Fatalf("missing restored line: %q", out)
	}

	got, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(got) != "theme=dark\n" {
		t.Fatalf("restore produced wrong contents: %q", got)
	}
}

func TestRestoreCmd_RefusesToOverwriteWithoutFlag(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")
	src := trackedFile(t, "app", "a=1\n")

	_, errOut, err := run(t, "", "restore", "app")
	if !errors.Is(err, errdefs.ErrWouldOverwrite) {
		t.Fatalf("expected overwrite guard, got: %v", err)
	}
	if !strings.Contains(errOut, "pass --overwrite") {
		t.Fatalf("expected hint on stderr: %q", errOut)
	}

	// The tracked file is untouched.
	got, err := os.ReadFile(src)
	if err != nil || string(got) != "a=1\n" {
		t.Fatalf("source modified by refused restore: %q, %v", got, err)
	}
}

func TestRestoreCmd_ToCopiesElsewhere(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")
	trackedFile(t, "app", "a=1\n")

	dest := filepath.Join(t.TempDir(), "copy.conf")
	out := mustRun(t, "restore", "app", "--to", dest)
	if !strings.Contains(out, "restored app") {
		t.Fatalf("missing restored line: %q", out)
	}
	got, err := os.ReadFile(dest)
	if err != nil || string(got) != "a=1\n" {
		t.Fatalf("bad restored copy: %q, %v", got, err)
	}
}

func TestRestoreCmd_DryRun(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")
	src := trackedFile(t, "app", "a=1\n")

	writeFile(t, src, "changed")
	out := mustRun(t, "restore", "app", "--dry-run")
	if !strings.Contains(out, "would restore app") {
		t.Fatalf("missing dry-run line: %q", out)
	}
	got, _ := os.ReadFile(src)
	if string(got) != "changed" {
		t.Fatalf("dry run must not copy: %q", got)
	}
}

func TestRestoreCmd_UntrackedAliasNeedsTo(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")

	_, _, err := run(t, "", "restore", "ghost")
	if !errors.Is(err, errdefs.ErrNotFound) {
		t.Fatalf("expected not-found error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "--to") {
		t.Fatalf("expected hint about --to: %v", err)
	}
}

func TestRestoreCmd_UntrackedAliasWithToUsesRepoCopy(t *testing.T) {
	setHome(t)
	mustRun(t, "init", "--local")
	trackedFile(t, "app", "a=1\n")
	mustRun(t, "remove", "app")

	dest := filepath.Join(t.TempDir(), "back.conf")
	mustRun(t, "restore", "app", "--to", dest)
	got, err := os.ReadFile(dest)
	if err != nil || string(got) != "a=1\n" {
		t.Fatalf("expected repo copy to survive remove: %q, %v", got, err)
	}
}

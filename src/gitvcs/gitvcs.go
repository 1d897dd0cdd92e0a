// Package gitvcs drives the git CLI for repository versioning. confsync
// shells out rather than linking a git implementation, so anything the
// user's git can do (credentials, ssh configs, hooks) keeps working.
package gitvcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"confsync/src/errdefs"
)

// Runner executes one git invocation inside dir and returns the captured
// output. Tests substitute it to avoid spawning processes.
type Runner func(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)

// Git operates on one profile's repository directory.
type Git struct {
	dir string
	run Runner
}

// New returns a Git bound to the repository working tree at dir, using the
// git binary from PATH.
func New(dir string) *Git {
	return &Git{dir: dir, run: execRunner}
}

// NewWithRunner is New with a caller-supplied runner.
func NewWithRunner(dir string, run Runner) *Git {
	return &Git{dir: dir, run: run}
}

// Installed reports whether a git binary is available on PATH.
func Installed() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Dir returns the repository working tree path.
func (g *Git) Dir() string { return g.dir }

// Exists reports whether the working tree has been initialised.
func (g *Git) Exists() bool {
	fi, err := os.Stat(g.dir)
	return err == nil && fi.IsDir()
}

// Init creates the repository with "main" as the initial branch, enables
// rebase pulls, and wires the origin remote when remoteURL is non-empty.
func (g *Git) Init(ctx context.Context, remoteURL string) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return errdefs.IO(err, "create repo dir %s", g.dir)
	}
	if _, stderr, err := g.run(ctx, g.dir, "init", "--initial-branch=main"); err != nil {
		if !isUnknownInitialBranch(stderr) {
			return fmt.Errorf("git: init: %w: %s", err, strings.TrimSpace(stderr))
		}
		// Older gits predate --initial-branch; fall back and rename.
		if _, stderr, err := g.run(ctx, g.dir, "init"); err != nil {
			return fmt.Errorf("git: init: %w: %s", err, strings.TrimSpace(stderr))
		}
		if _, stderr, err := g.run(ctx, g.dir, "symbolic-ref", "HEAD", "refs/heads/main"); err != nil {
			return fmt.Errorf("git: set initial branch: %w: %s", err, strings.TrimSpace(stderr))
		}
	}
	if _, stderr, err := g.run(ctx, g.dir, "config", "pull.rebase", "true"); err != nil {
		return fmt.Errorf("git: config pull.rebase: %w: %s", err, strings.TrimSpace(stderr))
	}
	if remoteURL != "" {
		if _, stderr, err := g.run(ctx, g.dir, "remote", "add", "origin", remoteURL); err != nil {
			return fmt.Errorf("git: add remote: %w: %s", err, strings.TrimSpace(stderr))
		}
	}
	return nil
}

// CommitAll stages every change in the working tree and commits it. A commit
// that finds nothing to record is not an error.
func (g *Git) CommitAll(ctx context.Context, message string) error {
	if _, stderr, err := g.run(ctx, g.dir, "add", "."); err != nil {
		return fmt.Errorf("git: stage changes: %w: %s", err, strings.TrimSpace(stderr))
	}
	stdout, stderr, err := g.run(ctx, g.dir, "commit", "-m", message)
	if err != nil {
		if isNothingToCommit(stdout + stderr) {
			return nil
		}
		return fmt.Errorf("git: commit: %w: %s", err, strings.TrimSpace(stderr+stdout))
	}
	return nil
}

// Push synchronises with the remote: pull (rebase, per Init's config) first,
// then push the main branch.
func (g *Git) Push(ctx context.Context) error {
	if _, stderr, err := g.run(ctx, g.dir, "pull"); err != nil {
		if !isNoUpstream(stderr) {
			return fmt.Errorf("git: pull: %w: %s", err, strings.TrimSpace(stderr))
		}
	}
	if _, stderr, err := g.run(ctx, g.dir, "push", "-u", "origin", "main"); err != nil {
		return fmt.Errorf("git: push: %w: %s", err, strings.TrimSpace(stderr))
	}
	return nil
}

// DeleteRemoteBranch removes the main branch from origin.
func (g *Git) DeleteRemoteBranch(ctx context.Context) error {
	if _, stderr, err := g.run(ctx, g.dir, "push", "--delete", "origin", "main"); err != nil {
		return fmt.Errorf("git: delete remote branch: %w: %s", err, strings.TrimSpace(stderr))
	}
	return nil
}

// Forward runs an arbitrary git command in the repository and returns its
// stdout, for the passthrough CLI command.
func (g *Git) Forward(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git: no command given")
	}
	if !g.Exists() {
		return "", errdefs.NotFound("repository %s", g.dir)
	}
	stdout, stderr, err := g.run(ctx, g.dir, args...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr))
	}
	return stdout, nil
}

func isUnknownInitialBranch(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "unknown option") && strings.Contains(s, "initial-branch")
}

func isNothingToCommit(output string) bool {
	s := strings.ToLower(output)
	return strings.Contains(s, "nothing to commit") || strings.Contains(s, "nothing added to commit")
}

func isNoUpstream(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "no tracking information") ||
		strings.Contains(s, "does not appear to be a git repository") ||
		strings.Contains(s, "couldn't find remote ref")
}

func execRunner(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}

package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"confsync/src/config"
	"confsync/src/diag"
	"confsync/src/gitvcs"
	"confsync/src/paths"
	"confsync/src/repo"
	"confsync/src/safety"
	"confsync/src/ux"
)

// app bundles the resolved environment a command works in: directory layout,
// config store, repository tree, diagnostics log, and output printer.
type app struct {
	paths   paths.Provider
	store   *config.Store
	tree    repo.Tree
	diag    *diag.Logger
	ui      *ux.Printer
	stderr  io.Writer
	profile string // --profile flag, may be empty
	verbose bool
	quiet   bool
	yes     bool
}

// newApp resolves the directory layout and global flags. It does not read
// the config document; commands load it when they need it, so `init --force`
// can still recover from a corrupt file.
func newApp(cmd *cobra.Command) (*app, error) {
	p, err := paths.Default()
	if err != nil {
		return nil, err
	}
	flags := cmd.Root().PersistentFlags()
	verbose, _ := flags.GetBool("verbose")
	quiet, _ := flags.GetBool("quiet")
	yes, _ := flags.GetBool("yes")
	profile, _ := flags.GetString("profile")

	dg, err := diag.Open(p.LogFile(), verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &app{
		paths:   p,
		store:   config.NewStore(p.ConfigFile()),
		tree:    repo.NewTree(p.RepoRoot()),
		diag:    dg,
		ui:      ux.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet),
		stderr:  cmd.ErrOrStderr(),
		profile: profile,
		verbose: verbose,
		quiet:   quiet,
		yes:     yes,
	}, nil
}

func (a *app) close() { _ = a.diag.Close() }

// loadConfig reads the registry and resolves the active profile in one step.
func (a *app) loadConfig() (config.Config, string, error) {
	cfg, err := a.store.Load()
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, cfg.ActiveProfile(a.profile), nil
}

// requireInit gates commands that are meaningless before `confsync init`.
func (a *app) requireInit() error {
	if !a.store.Exists() {
		return fmt.Errorf("not initialised; run `confsync init` first")
	}
	return nil
}

// git returns the wrapper for one profile's repository.
func (a *app) git(profile string) *gitvcs.Git {
	return gitvcs.New(a.tree.ProfileDir(profile))
}

// safety translates the global flags for confirmation prompts.
func (a *app) safety() safety.Options {
	return safety.Options{Yes: a.yes}
}

// progressOut returns the copy progress destination: stderr in verbose runs,
// silent otherwise.
func (a *app) progressOut() io.Writer {
	if a.verbose {
		return a.stderr
	}
	return nil
}

// cmdContext returns the command's context, falling back to Background for
// callers that build commands outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// sortedAliases returns the registry's aliases in stable order.
func sortedAliases(files map[string]string) []string {
	aliases := make([]string, 0, len(files))
	for alias := range files {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

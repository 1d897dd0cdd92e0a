// Package config persists the confsync registry: storage settings plus the
// alias to path tracking table, stored as TOML in the user's config
// directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/pelletier/go-toml/v2"

	"confsync/src/errdefs"
)

// Config mirrors the on-disk TOML document.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Tracking Tracking `toml:"tracking"`
}

// Storage describes where backups go.
type Storage struct {
	// Local disables pushing to a remote; repository lives only on disk.
	Local bool `toml:"local"`
	// RepoURL is the remote git URL, empty for local-only setups.
	RepoURL string `toml:"repo_url"`
	// Profile selects the active repository subtree. Empty means "default".
	Profile string `toml:"profile,omitempty"`
}

// Tracking is the alias to absolute-path registry.
type Tracking struct {
	Files map[string]string `toml:"files"`
}

// DefaultProfile is the profile used when none is configured or requested.
const DefaultProfile = "default"

// SelfAlias is the alias under which the registry document tracks itself.
const SelfAlias = "confsync"

// Default returns a fresh configuration that already tracks the config file
// itself under SelfAlias, so the registry is part of every backup.
func Default(configFile string) Config {
	return Config{
		Storage: Storage{Local: true},
		Tracking: Tracking{
			Files: map[string]string{SelfAlias: configFile},
		},
	}
}

// ActiveProfile resolves the effective profile name: an explicit request
// wins, then the configured profile, then the default.
func (c Config) ActiveProfile(requested string) string {
	if requested != "" {
		return requested
	}
	if c.Storage.Profile != "" {
		return c.Storage.Profile
	}
	return DefaultProfile
}

// Store reads and writes the registry document. Every operation works on the
// current on-disk state; nothing is cached between calls.
type Store struct {
	path string
}

// NewStore returns a store bound to the given config.toml path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the config document.
func (s *Store) Path() string { return s.path }

// Exists reports whether the config document has been written yet.
func (s *Store) Exists() bool {
	fi, err := os.Stat(s.path)
	return err == nil && fi.Mode().IsRegular()
}

// Load reads the document from disk. A missing file yields the default
// configuration; a file that cannot be decoded yields ErrConfigCorrupt.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(s.path), nil
	}
	if err != nil {
		return Config{}, errdefs.IO(err, "read config %s", s.path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errdefs.ConfigCorrupt(err, "decode %s", s.path)
	}
	if cfg.Tracking.Files == nil {
		cfg.Tracking.Files = map[string]string{}
	}
	return cfg, nil
}

// Save writes the document atomically, creating the config directory on
// first use.
func (s *Store) Save(cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errdefs.IO(err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdefs.IO(err, "create config dir")
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return errdefs.IO(err, "write config %s", s.path)
	}
	return nil
}

// AddTracking registers alias for the file at path and persists the change.
// The path is canonicalised (absolute, symlinks resolved) before it is
// stored, and the canonical form is returned. Both the alias and the
// canonical path must be unused.
func (s *Store) AddTracking(alias, path string) (string, error) {
	if err := validateAlias(alias); err != nil {
		return "", err
	}
	canonical, err := Canonicalize(path)
	if err != nil {
		return "", err
	}
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	if _, ok := cfg.Tracking.Files[alias]; ok {
		return "", errdefs.DuplicateAlias("alias %q", alias)
	}
	for existing, p := range cfg.Tracking.Files {
		if p == canonical {
			return "", errdefs.DuplicatePath("path %q is tracked as %q", canonical, existing)
		}
	}
	cfg.Tracking.Files[alias] = canonical
	if err := s.Save(cfg); err != nil {
		return "", err
	}
	return canonical, nil
}

// RemoveTracking deletes alias from the registry and persists the change.
// Repository copies made under the alias are left in place.
func (s *Store) RemoveTracking(alias string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := cfg.Tracking.Files[alias]; !ok {
		return errdefs.NotFound("alias %q", alias)
	}
	delete(cfg.Tracking.Files, alias)
	return s.Save(cfg)
}

// Resolve returns the tracked path for alias.
func (s *Store) Resolve(alias string) (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	path, ok := cfg.Tracking.Files[alias]
	if !ok {
		return "", errdefs.NotFound("alias %q", alias)
	}
	return path, nil
}

// AliasFor returns the alias tracking path, comparing canonical forms when
// the file still exists.
func (s *Store) AliasFor(path string) (string, error) {
	lookup := path
	if canonical, err := Canonicalize(path); err == nil {
		lookup = canonical
	} else if abs, absErr := filepath.Abs(path); absErr == nil {
		lookup = abs
	}
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	for alias, p := range cfg.Tracking.Files {
		if p == lookup {
			return alias, nil
		}
	}
	return "", errdefs.NotFound("path %q", path)
}

// validateAlias rejects names that cannot serve as a repository directory.
func validateAlias(alias string) error {
	if alias == "" || alias == "." || alias == ".." {
		return fmt.Errorf("invalid alias %q", alias)
	}
	if strings.ContainsAny(alias, `/\`) {
		return fmt.Errorf("invalid alias %q: must not contain path separators", alias)
	}
	return nil
}

// Canonicalize turns path into its canonical absolute form and verifies it
// names an existing regular file.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errdefs.IO(err, "resolve %s", path)
	}
	fi, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errdefs.NotFound("file %q", path)
	}
	if err != nil {
		return "", errdefs.IO(err, "stat %s", abs)
	}
	if !fi.Mode().IsRegular() {
		return "", errdefs.NotAFile("%q", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errdefs.IO(err, "resolve symlinks for %s", abs)
	}
	return resolved, nil
}

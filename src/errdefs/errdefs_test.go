package errdefs_test

import (
	"errors"
	"os"
	"testing"

	"confsync/src/errdefs"
)

func TestCategoryMatching(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{errdefs.NotFound("alias %q", "nginx"), errdefs.ErrNotFound},
		{errdefs.NotAFile("%s is a directory", "/etc"), errdefs.ErrNotAFile},
		{errdefs.DuplicateAlias("alias %q", "vim"), errdefs.ErrDuplicateAlias},
		{errdefs.DuplicatePath("path %q", "/etc/vimrc"), errdefs.ErrDuplicatePath},
		{errdefs.WouldOverwrite("file %q", "/tmp/x"), errdefs.ErrWouldOverwrite},
		{errdefs.ConfigCorrupt(errors.New("bad toml"), "decode config"), errdefs.ErrConfigCorrupt},
		{errdefs.IO(os.ErrPermission, "copy %s", "/etc/hosts"), errdefs.ErrIO},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.kind) {
			t.Errorf("expected %v to match %v", tc.err, tc.kind)
		}
	}
}

func TestCategoriesAreDistinct(t *testing.T) {
	err := errdefs.NotFound("alias %q", "nginx")
	if errors.Is(err, errdefs.ErrDuplicateAlias) {
		t.Fatalf("not-found error matched duplicate-alias category")
	}
}

func TestMessageIncludesDetailAndCause(t *testing.T) {
	err := errdefs.IO(os.ErrPermission, "open %s", "/etc/shadow")
	want := "open /etc/shadow: i/o failure: permission denied"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestCauseIsUnwrappable(t *testing.T) {
	err := errdefs.IO(os.ErrPermission, "open file")
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected wrapped cause to be matchable")
	}
}

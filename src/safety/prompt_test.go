package safety_test

import (
	"bytes"
	"strings"
	"testing"

	"confsync/src/safety"
)

func TestConfirmAnswers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // EOF without input declines
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := safety.Options{}.Confirm(strings.NewReader(tc.input), &out, "Delete the repository?")
		if err != nil {
			t.Fatalf("input %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("input %q: got %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("input %q: prompt missing", tc.input)
		}
	}
}

func TestYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	got, err := safety.Options{Yes: true}.Confirm(strings.NewReader(""), &out, "Delete?")
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected acceptance")
	}
	if out.Len() != 0 {
		t.Fatalf("prompt should be skipped, got %q", out.String())
	}
}

func TestDryRunDeclines(t *testing.T) {
	got, err := safety.Options{DryRun: true, Yes: true}.Confirm(strings.NewReader("y\n"), nil, "Delete?")
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("dry-run must decline")
	}
}

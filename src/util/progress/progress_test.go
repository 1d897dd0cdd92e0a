package progress_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"confsync/src/util/progress"
)

func TestReaderReportsFinalPercentage(t *testing.T) {
	payload := strings.Repeat("a", 1000)
	var out bytes.Buffer
	r := progress.NewReader(strings.NewReader(payload), int64(len(payload)), "hosts", &out)

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != len(payload) {
		t.Fatalf("read %d bytes, want %d", len(data), len(payload))
	}
	if !strings.Contains(out.String(), "100% (1000/1000 bytes)") {
		t.Fatalf("missing final percentage, got %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Fatalf("final update should end the line")
	}
}

func TestReaderWithUnknownTotal(t *testing.T) {
	var out bytes.Buffer
	r := progress.NewReader(strings.NewReader("abc"), 0, "hosts", &out)

	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(out.String(), "3 bytes") {
		t.Fatalf("missing byte count, got %q", out.String())
	}
}

func TestReaderWithNilOutputStaysSilent(t *testing.T) {
	r := progress.NewReader(strings.NewReader("abc"), 3, "hosts", nil)
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("read: %v", err)
	}
}

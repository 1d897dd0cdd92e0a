// Package progress renders copy progress for file transfers. Reads happen
// from a single goroutine, so no locking is needed.
package progress

import (
	"fmt"
	"io"
	"time"
)

// interval throttles intermediate updates so small chunk sizes do not flood
// the terminal.
const interval = 200 * time.Millisecond

// Reader wraps an io.Reader and writes percentage updates to out as bytes
// flow through it. A nil out disables all output.
type Reader struct {
	r        io.Reader
	out      io.Writer
	label    string
	total    int64
	done     int64
	lastTick time.Time
}

// NewReader wraps r. total is the expected byte count; when it is unknown
// (zero) the reader reports raw byte counts instead of percentages.
func NewReader(r io.Reader, total int64, label string, out io.Writer) *Reader {
	return &Reader{r: r, out: out, label: label, total: total}
}

func (p *Reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		if now := time.Now(); now.Sub(p.lastTick) >= interval {
			p.render()
			p.lastTick = now
		}
	}
	if err == io.EOF && p.out != nil {
		p.render()
		fmt.Fprintln(p.out)
	}
	return n, err
}

func (p *Reader) render() {
	if p.out == nil {
		return
	}
	if p.total > 0 {
		pct := float64(p.done) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\r%s: %3.0f%% (%d/%d bytes)", p.label, pct, p.done, p.total)
		return
	}
	fmt.Fprintf(p.out, "\r%s: %d bytes", p.label, p.done)
}

// Package progress reports per-file progress during a collection run.
//
// The core hands out work against the Reporter interface and never inspects
// terminal capabilities itself; New picks the renderer once, up front.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter receives completion events for a run with a known total.
type Reporter interface {
	// Advance marks n units of work as done.
	Advance(n int)
	// Finish flushes and releases the renderer. Safe to call once.
	Finish()
}

// New selects a renderer for the given total: an interactive bar when stderr
// is a terminal, a plain line-rewriting counter otherwise.
func New(total int, description string) Reporter {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return newBar(total, description)
	}
	return &plain{out: os.Stderr, total: total, description: description}
}

// Nop returns a reporter that discards all events.
func Nop() Reporter {
	return nop{}
}

type bar struct {
	pb *progressbar.ProgressBar
}

func newBar(total int, description string) *bar {
	return &bar{
		pb: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (b *bar) Advance(n int) {
	_ = b.pb.Add(n)
}

func (b *bar) Finish() {
	_ = b.pb.Finish()
}

type plain struct {
	out         io.Writer
	total       int
	current     int
	description string
}

func (p *plain) Advance(n int) {
	p.current += n
	fmt.Fprintf(p.out, "\r%s: %d/%d", p.description, p.current, p.total)
}

func (p *plain) Finish() {
	fmt.Fprintln(p.out)
}

type nop struct{}

func (nop) Advance(int) {}
func (nop) Finish()     {}

package diagfmt

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// Progress renders a redrawn-in-place progress bar for a multi-file batch
// run, using bubbles/progress's static ViewAs rendering rather than the
// bubbletea.Program event loop a fully interactive progress bar would
// need — a run() is not interactive, it just wants to show how far a
// batch has gotten.
type Progress struct {
	mu   sync.Mutex
	w    io.Writer
	bar  progress.Model
	last string
}

// NewProgress returns a Progress that writes to w, or one whose Update is
// a no-op if w is nil (a caller running a single file has nothing to
// show a bar for).
func NewProgress(w io.Writer) *Progress {
	if w == nil {
		return nil
	}
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &Progress{w: w, bar: bar}
}

// Update redraws the bar at done/total, overwriting the previous line.
func (p *Progress) Update(done, total int, label string) {
	if p == nil || total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pct := float64(done) / float64(total)
	line := fmt.Sprintf("\r%s %3d/%3d %s", p.bar.ViewAs(pct), done, total, label)
	fmt.Fprint(p.w, line)
	p.last = line
}

// Done moves to a fresh line after the last drawn bar, if any; it does not
// redraw the bar at 100%.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last != "" {
		fmt.Fprintln(p.w)
	}
}

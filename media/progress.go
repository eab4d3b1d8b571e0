package media

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressTracker receives the bytes of a copy and is told when it ends
type ProgressTracker interface {
	io.Writer
	Done()
}

var labelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Bold(true)

// barWriter renders a bubbles progress bar on a single terminal line
type barWriter struct {
	out        io.Writer
	label      string
	total      int64
	current    int64
	prog       progress.Model
	lastRender time.Time
}

// NewProgressBar returns a tracker drawing to out. Redraws are throttled.
func NewProgressBar(out io.Writer, name string, total int64) ProgressTracker {
	return &barWriter{
		out:   out,
		label: labelStyle.Render(name),
		total: total,
		prog:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (pw *barWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.current += int64(n)
	if time.Since(pw.lastRender) >= 50*time.Millisecond {
		pw.render(pw.percent())
		pw.lastRender = time.Now()
	}
	return n, nil
}

func (pw *barWriter) Done() {
	pw.render(1.0)
	_, _ = fmt.Fprintln(pw.out)
}

func (pw *barWriter) percent() float64 {
	if pw.total <= 0 {
		return 1.0
	}
	return float64(pw.current) / float64(pw.total)
}

func (pw *barWriter) render(percent float64) {
	_, _ = fmt.Fprintf(pw.out, "\r%s %s", pw.label, pw.prog.ViewAs(percent))
}

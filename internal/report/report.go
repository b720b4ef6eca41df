// Package report writes the human-readable output of the programs.
//
// Result lines are written as is. Banners are highlighted when the
// output is a color-capable terminal, and written as plain text
// otherwise, so that piped output and tests see exactly the text.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// A Reporter serializes output lines from concurrent tasks.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	plain  bool
	banner lipgloss.Style
	status lipgloss.Style
}

// New returns a reporter for w. Highlighting is enabled only when w is
// a terminal whose environment advertises color support.
func New(w io.Writer) *Reporter {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && os.Getenv("TERM") != "dumb" {
		profile = termenv.NewOutput(f).EnvColorProfile()
	}
	return NewWithProfile(w, profile)
}

// Plain returns a reporter for w that never highlights.
func Plain(w io.Writer) *Reporter {
	return NewWithProfile(w, termenv.Ascii)
}

// NewWithProfile returns a reporter for w that renders with the given
// color profile. termenv.Ascii disables highlighting.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Reporter {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Reporter{
		out:    w,
		plain:  profile == termenv.Ascii,
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status: r.NewStyle().Faint(true),
	}
}

// Line writes one formatted line.
func (r *Reporter) Line(format string, args ...any) {
	r.write(fmt.Sprintf(format, args...))
}

// Banner writes a highlighted heading line.
func (r *Reporter) Banner(text string) {
	if !r.plain {
		text = r.banner.Render(text)
	}
	r.write(text)
}

// Status writes a dimmed informational line, such as an elapsed time.
func (r *Reporter) Status(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if !r.plain {
		text = r.status.Render(text)
	}
	r.write(text)
}

// Blank writes an empty line.
func (r *Reporter) Blank() {
	r.write("")
}

func (r *Reporter) write(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, line)
}

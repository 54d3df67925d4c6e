package diag

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/fzipp/pl0-recognizer/pls"
)

// MaxPrinted is the default number of diagnostics a Printer writes before
// it stops printing. Later ones are still counted.
const MaxPrinted = 25

// Printer writes each diagnostic as it is reported, one per line:
//
//	  pos 3:14 ; EXPECTED
type Printer struct {
	Max int // 0 means MaxPrinted

	w      io.Writer
	n      int
	err    error
	pos    lipgloss.Style
	msg    lipgloss.Style
	accept lipgloss.Style
	reject lipgloss.Style
}

// NewPrinter returns a Printer writing to w. With styled set, positions,
// messages and the verdict are colored for the terminal behind w.
func NewPrinter(w io.Writer, styled bool) *Printer {
	p := &Printer{w: w}
	if styled {
		r := lipgloss.NewRenderer(w)
		p.pos = r.NewStyle().Foreground(lipgloss.Color("#6B7280"))
		p.msg = r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
		p.accept = r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
		p.reject = p.msg
	} else {
		p.pos = lipgloss.NewStyle()
		p.msg = p.pos
		p.accept = p.pos
		p.reject = p.pos
	}
	return p
}

// Styled reports whether the printer colors its output.
func (p *Printer) Styled() bool {
	return p.msg.GetBold()
}

func (p *Printer) Report(pos pls.Pos, msg string) {
	p.n++
	limit := p.Max
	if limit <= 0 {
		limit = MaxPrinted
	}
	if p.n > limit {
		return
	}
	p.printf("  %s %s\n", p.pos.Render("pos "+pos.String()), p.msg.Render(msg))
}

// Count is the number of diagnostics reported so far, printed or not.
func (p *Printer) Count() int {
	return p.n
}

// Heading writes a line naming the file about to be recognized.
func (p *Printer) Heading(file string, lang pls.Lang) {
	p.printf("%s (%v)\n", file, lang)
}

// Verdict writes the final line for one input.
func (p *Printer) Verdict(accepted bool) {
	if accepted {
		p.printf("%s\n", p.accept.Render("PARSE SUCCESSFUL"))
	} else {
		p.printf("%s\n", p.reject.Render("PARSE FAILED"))
	}
}

// Reset clears the count before the next input.
func (p *Printer) Reset() {
	p.n = 0
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = fmt.Errorf("diag: %w", err)
	}
}

package ui

import (
	"fmt"
	"io"

	"github.com/homed-tools/hddl/internal/catalog"
)

// Printer writes diagnostics, normally to stderr
type Printer struct {
	w       io.Writer
	verbose bool
}

func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

// Info is only shown in verbose mode
func (p *Printer) Info(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", styles.Info.Render("•"), fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", styles.Warn.Render("warning:"), fmt.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", styles.Error.Render("error:"), fmt.Sprintf(format, args...))
}

// Result reports skipped files and, in verbose mode, a short summary
func (p *Printer) Result(res catalog.Result, cat *catalog.Catalog) {
	for _, s := range res.Skipped {
		p.Warn("%v", s.Err)
	}
	p.Info("collected %d file(s), %d device(s), skipped %d", res.Collected, cat.Count(), len(res.Skipped))
}

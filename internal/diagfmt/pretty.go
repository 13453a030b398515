package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sled/internal/diag"
	"sled/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}

	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs > 0 || warns > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	head := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		formatPath(f, opts.PathMode), start.Line, start.Col, head, d.Message)

	writeContext(w, f, start, end, d.Primary, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			nStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				formatPath(nf, opts.PathMode), nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// writeContext печатает строки исходника вокруг диагностики и каретку под
// подсвеченным фрагментом. Ширина подчёркивания считается в экранных
// колонках, не в байтах.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, sp source.Span, opts PrettyOpts) {
	first := start.Line
	if ctx := uint32(max(int(opts.Context), 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	for line := first; line < start.Line; line++ {
		fmt.Fprintf(w, "  %4d | %s\n", line, f.GetLine(line))
	}

	lineText := f.GetLine(start.Line)
	fmt.Fprintf(w, "  %4d | %s\n", start.Line, lineText)

	col := int(start.Col) - 1
	if col > len(lineText) {
		col = len(lineText)
	}
	pad := runewidth.StringWidth(lineText[:col])

	stopCol := len(lineText)
	if end.Line == start.Line && int(end.Col)-1 <= len(lineText) {
		stopCol = int(end.Col) - 1
	}
	width := 1
	if stopCol > col {
		width = runewidth.StringWidth(lineText[col:stopCol])
	}

	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = color.New(color.FgRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

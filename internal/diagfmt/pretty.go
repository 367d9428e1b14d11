package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cedar/internal/diag"
	"cedar/internal/source"
)

var (
	headerColor = color.New(color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
	infoColor   = color.New(color.FgCyan)
	noteColor   = color.New(color.FgHiBlack)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span и Context строк
// вокруг, затем Notes. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "<unknown>: %s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	sev := severityColor(d.Severity)

	header := fmt.Sprintf("%s:%d:%d:", formatPath(f, opts.PathMode, fs), start.Line, start.Col)
	fmt.Fprintf(w, "%s %s %s: %s\n",
		paint(headerColor, opts.Color, header),
		paint(sev, opts.Color, d.Severity.String()),
		paint(sev, opts.Color, d.Code.ID()),
		d.Message)

	writeSnippet(w, f, start, end, sev, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			writeNote(w, note, fs, opts)
		}
	}
}

// writeSnippet печатает строку с кареткой и Context строк вокруг в
// формате «  12 | text».
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, sev *color.Color, opts PrettyOpts) {
	if start.Line == 0 {
		return
	}
	var ctx uint32
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}

	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	lineCount := uint32(len(f.LineIdx)) + 1
	last := min(start.Line+ctx, lineCount)

	gutter := len(fmt.Sprintf("%d", last))
	for line := first; line <= last; line++ {
		fmt.Fprintf(w, " %*d | %s\n", gutter, line, f.GetLine(line))
		if line == start.Line {
			fmt.Fprintf(w, " %s | %s\n",
				strings.Repeat(" ", gutter),
				paint(sev, opts.Color, caretLine(f.GetLine(line), start, end)))
		}
	}
}

// caretLine выравнивает ^~~~ по байтовой колонке начала. Табы в
// префиксе сохраняются, иначе разъедется на любом табстопе.
func caretLine(text string, start, end source.LineCol) string {
	var sb strings.Builder
	for i := 0; i < len(text) && uint32(i) < start.Col-1; i++ {
		if text[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}

	width := uint32(1)
	if end.Line == start.Line && end.Col > start.Col {
		width = end.Col - start.Col
	}
	sb.WriteByte('^')
	for i := uint32(1); i < width; i++ {
		sb.WriteByte('~')
	}
	return sb.String()
}

func writeNote(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(note.Span.File)
	if f == nil {
		fmt.Fprintf(w, "  %s %s\n", paint(noteColor, opts.Color, "note:"), note.Msg)
		return
	}
	start, _ := fs.Resolve(note.Span)
	fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
		paint(noteColor, opts.Color, "note:"),
		formatPath(f, opts.PathMode, fs), start.Line, start.Col, note.Msg)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func formatPath(f *source.File, mode PathMode, fs *source.FileSet) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

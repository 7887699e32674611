package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxShown is how many diagnostics of the reported severity are
// printed before the rest is summarized.
const DefaultMaxShown = 10

type styles struct {
	fatal   lipgloss.Style
	warning lipgloss.Style
	label   lipgloss.Style
	frame   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		fatal:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		label:   lipgloss.NewStyle().Bold(true),
		frame:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	}
}

// Printer renders records. The zero value prints without color, without
// source excerpts and with DefaultMaxShown.
type Printer struct {
	Sources  *Sources
	Color    bool
	MaxShown int

	styles styles
}

// NewPrinter returns a printer showing excerpts from sources.
func NewPrinter(sources *Sources, color bool) *Printer {
	return &Printer{Sources: sources, Color: color, MaxShown: DefaultMaxShown, styles: defaultStyles()}
}

func (p *Printer) paint(s lipgloss.Style, text string) string {
	if !p.Color || text == "" {
		return text
	}
	return s.Render(text)
}

func (p *Printer) severity(fatal bool) lipgloss.Style {
	if fatal {
		return p.styles.fatal
	}
	return p.styles.warning
}

// Fprint writes the diagnostics of the highest severity present in rec,
// followed by a one-line count. Nothing is written for an empty record.
func (p *Printer) Fprint(w io.Writer, rec *Record) error {
	if rec.Len() == 0 {
		return nil
	}
	fatal := rec.IsFatal()
	count := rec.CountWarnings()
	if fatal {
		count = rec.CountErrors()
	}
	limit := p.MaxShown
	if limit <= 0 {
		limit = DefaultMaxShown
	}
	style := p.severity(fatal)

	var b strings.Builder
	shown := 0
	for _, e := range rec.contents {
		if e.fatal != fatal {
			continue
		}
		if shown == limit {
			break
		}
		shown++
		b.WriteString(p.Format(e))
		b.WriteString("\n")
	}
	if count > limit {
		b.WriteString(p.paint(style, fmt.Sprintf(" And %d more.", count-limit)))
		b.WriteString("\n")
	}
	plural := ""
	if count > 1 {
		plural = "s"
	}
	if fatal {
		fmt.Fprintf(&b, "%s %s\n", p.paint(style, "Fatal:"), p.paint(p.styles.label, fmt.Sprintf("%d error%s emitted", count, plural)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", p.paint(style, "Nonfatal:"), p.paint(p.styles.label, fmt.Sprintf("%d warning%s emitted", count, plural)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Format renders one diagnostic, each line terminated by a newline.
func (p *Printer) Format(e *Error) string {
	style := p.severity(e.fatal)
	header := "--> Warning:"
	if e.fatal {
		header = "--> Error:"
	}
	bar := p.paint(style, " |")

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.paint(style, header), p.paint(p.styles.label, e.label))
	for _, it := range e.items {
		switch it.Kind {
		case BlockItem:
			for _, line := range p.block(it.Loc, it.Message, style) {
				fmt.Fprintf(&b, "%s  %s\n", bar, line)
			}
		case TextItem:
			fmt.Fprintf(&b, "%s  %s\n", bar, p.paint(p.styles.label, it.Message))
		case HintItem:
			fmt.Fprintf(&b, "%s      %s %s\n", bar, p.paint(p.styles.frame, "? hint:"), it.Message)
		}
	}
	return b.String()
}

// block renders a source excerpt in the usual compiler layout:
//
//	--> file:4:3
//	  |
//	4 | - instance: 2021-Mar-05
//	  |   ^------------------^
//	  |
//	  = message
func (p *Printer) block(loc Loc, msg string, caret lipgloss.Style) []string {
	width := len(strconv.Itoa(max(loc.Start.Line, loc.End.Line)))
	pad := strings.Repeat(" ", width)
	gutter := p.paint(p.styles.frame, pad+" |")
	lines := []string{p.paint(p.styles.frame, fmt.Sprintf("%s--> %s:%d:%d", pad, loc.Filename, loc.Start.Line, loc.Start.Column))}

	code := func(n int) (string, bool) {
		text, ok := p.Sources.Line(loc.Filename, n)
		if !ok {
			return "", false
		}
		num := p.paint(p.styles.frame, fmt.Sprintf("%*d |", width, n))
		return num + " " + strings.ReplaceAll(text, "\t", " "), true
	}
	marker := func(col int, mark string) string {
		return gutter + " " + strings.Repeat(" ", max(col-1, 0)) + p.paint(caret, mark)
	}

	if first, ok := code(loc.Start.Line); ok {
		lines = append(lines, gutter, first)
		switch {
		case loc.End.Line <= loc.Start.Line:
			lines = append(lines, marker(loc.Start.Column, underline(loc.End.Column-loc.Start.Column)))
		default:
			lines = append(lines, marker(loc.Start.Column, "^"))
			if loc.End.Line > loc.Start.Line+1 {
				lines = append(lines, gutter+" ...")
			}
			if last, ok := code(loc.End.Line); ok {
				lines = append(lines, last, marker(loc.End.Column-1, "^"))
			}
		}
		lines = append(lines, gutter)
	}
	lines = append(lines, p.paint(p.styles.frame, pad+" =")+" "+msg)
	return lines
}

func underline(n int) string {
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("-", n-2) + "^"
}

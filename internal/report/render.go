package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"billig/internal/core"
)

var (
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	amountStyle   = cellStyle.Align(lipgloss.Right)
	headerStyle   = cellStyle.Bold(true)
	negativeStyle = amountStyle.Foreground(lipgloss.Color("9"))
	positiveStyle = amountStyle.Foreground(lipgloss.Color("10"))
)

// Grid is a titled table ready to print. Amounts, when set, holds the
// value behind every cell of Rows and turns on right alignment and colors
// for all columns but the first.
type Grid struct {
	Title   string
	Header  []string
	Rows    [][]string
	Amounts [][]core.Amount
}

// NewSummaryGrid starts a grid with the summary columns: the period, every
// category and the total.
func NewSummaryGrid(title string) *Grid {
	header := []string{"Period"}
	for _, c := range core.Categories() {
		header = append(header, c.String())
	}
	header = append(header, "Total")
	return &Grid{Title: title, Header: header}
}

// AddSummary appends a row labelled label. Zero amounts are left empty.
func (g *Grid) AddSummary(label string, total core.Amount, query func(core.Category) core.Amount) {
	row := []string{label}
	values := []core.Amount{0}
	for _, c := range core.Categories() {
		row = append(row, cell(query(c)))
		values = append(values, query(c))
	}
	row = append(row, cell(total))
	values = append(values, total)
	g.Rows = append(g.Rows, row)
	g.Amounts = append(g.Amounts, values)
}

// Rows lays out a table as text: one row per bucket, then a Total row.
func Rows(t Table) (header []string, rows [][]string, amounts [][]core.Amount) {
	g := tableGrid(t, "")
	return g.Header, g.Rows, g.Amounts
}

func tableGrid(t Table, title string) *Grid {
	g := NewSummaryGrid(title)
	for _, s := range t.Calendar.Contents() {
		g.AddSummary(core.FormatPeriod(s.Period), s.Total, s.Query)
	}
	totals := t.Totals()
	g.AddSummary("Total", totals.Total, totals.Query)
	return g
}

func cell(a core.Amount) string {
	if a == 0 {
		return ""
	}
	return a.String()
}

// Render prints every table of the report, each under its title.
func Render(w io.Writer, rep *Report, color bool) error {
	grids := make([]*Grid, 0, len(rep.Tables))
	for _, t := range rep.Tables {
		grids = append(grids, tableGrid(t, t.Title(rep.Period)))
	}
	return RenderGrids(w, grids, color)
}

// RenderTable prints a single table. Negative amounts are red and
// positive ones green when color is on.
func RenderTable(w io.Writer, t Table, period core.Period, color bool) error {
	return tableGrid(t, t.Title(period)).Render(w, color)
}

// RenderGrids prints grids separated by blank lines.
func RenderGrids(w io.Writer, grids []*Grid, color bool) error {
	for i, g := range grids {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := g.Render(w, color); err != nil {
			return err
		}
	}
	return nil
}

// Render prints the title, if any, then the bordered table.
func (g *Grid) Render(w io.Writer, color bool) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.Header...).
		Rows(g.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || g.Amounts == nil:
				return cellStyle
			case !color || row >= len(g.Amounts):
				return amountStyle
			case g.Amounts[row][col] < 0:
				return negativeStyle
			case g.Amounts[row][col] > 0:
				return positiveStyle
			default:
				return amountStyle
			}
		})
	var err error
	if g.Title != "" {
		_, err = fmt.Fprintf(w, "%s\n%s\n", g.Title, tbl.Render())
	} else {
		_, err = fmt.Fprintf(w, "%s\n", tbl.Render())
	}
	return err
}

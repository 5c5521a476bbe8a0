package notation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Treble staff lines run from E4 to F5.
const (
	bottomLine = 30
	topLine    = 38
)

const (
	minColumnWidth = 5
	maxColumnWidth = 9
	marginWidth    = 2
	noteHead       = "●"
	lineRune       = "─"
)

var (
	staffStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noteStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	emphasizedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Size is the canvas available to the renderer, in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Render draws glyphs on a treble staff with their names underneath. It
// redraws from scratch on every call and returns "" for no glyphs.
func Render(glyphs []Glyph, size Size) string {
	if len(glyphs) == 0 {
		return ""
	}
	colWidth := columnWidth(len(glyphs), size.Width)
	hi, lo := topLine, bottomLine
	for _, g := range glyphs {
		hi = max(hi, g.step())
		lo = min(lo, g.step())
	}

	lines := make([]string, 0, hi-lo+2)
	for row := hi; row >= lo; row-- {
		lines = append(lines, renderRow(glyphs, row, colWidth))
	}
	lines = append(lines, renderLabels(glyphs, colWidth))
	out := strings.Join(lines, "\n")
	if size.Width <= 0 || size.Height <= 0 {
		return out
	}
	return lipgloss.Place(size.Width, size.Height, lipgloss.Center, lipgloss.Center, out)
}

func columnWidth(count, width int) int {
	if width <= 0 {
		return minColumnWidth
	}
	w := (width - marginWidth) / count
	return min(max(w, minColumnWidth), maxColumnWidth)
}

func isLine(row int) bool {
	return (row-bottomLine)%2 == 0
}

func onStaff(row int) bool {
	return row >= bottomLine && row <= topLine && isLine(row)
}

// needsLedger reports whether g needs a ledger line drawn at row.
func needsLedger(g Glyph, row int) bool {
	if !isLine(row) || onStaff(row) {
		return false
	}
	if row < bottomLine {
		return g.step() <= row
	}
	return g.step() >= row
}

func renderRow(glyphs []Glyph, row, colWidth int) string {
	var b strings.Builder
	if onStaff(row) {
		b.WriteString(staffStyle.Render(strings.Repeat(lineRune, marginWidth)))
	} else {
		b.WriteString(strings.Repeat(" ", marginWidth))
	}
	for _, g := range glyphs {
		b.WriteString(renderCell(g, row, colWidth))
	}
	return b.String()
}

func renderCell(g Glyph, row, colWidth int) string {
	cells := make([]string, colWidth)
	fill := " "
	if onStaff(row) {
		fill = staffStyle.Render(lineRune)
	}
	for i := range cells {
		cells[i] = fill
	}
	center := colWidth / 2
	if needsLedger(g, row) {
		for i := center - 1; i <= center+1; i++ {
			cells[i] = staffStyle.Render(lineRune)
		}
	}
	if g.step() == row {
		style := noteStyle
		if g.Emphasized {
			style = emphasizedStyle
		}
		cells[center] = style.Render(noteHead)
		if sym := accidentalSymbol(g.Accidental); sym != "" {
			cells[center-1] = style.Render(sym)
		}
	}
	return strings.Join(cells, "")
}

func renderLabels(glyphs []Glyph, colWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", marginWidth))
	for _, g := range glyphs {
		label := g.Label()
		w := runewidth.StringWidth(label)
		left := max(colWidth/2-w/2, 0)
		right := max(colWidth-left-w, 0)
		style := labelStyle
		if g.Emphasized {
			style = emphasizedStyle
		}
		b.WriteString(strings.Repeat(" ", left))
		b.WriteString(style.Render(label))
		b.WriteString(strings.Repeat(" ", right))
	}
	return b.String()
}

package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/pkg/bench"
)

var (
	idStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	mediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	highStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// barStyle colors a bar by its share of the longest mark
func barStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 75:
		return highStyle
	case percent >= 25:
		return mediumStyle
	default:
		return lowStyle
	}
}

// drawColor renders the text layout with styled columns. Padding is computed
// on the plain text so columns stay aligned once escape codes are added.
func drawColor(snap bench.Snapshot, width int) (string, error) {
	if width < 1 {
		return "", derrors.NewInvalidWidthError(width)
	}

	margin := bench.Margin(snap)
	barWidth := bench.BarWidth(width, margin)

	var b strings.Builder
	for _, st := range snap {
		bar := bench.Bar(st.Percent, barWidth)
		idPad := strings.Repeat(" ", margin-utf8.RuneCountInString(st.ID))
		barPad := strings.Repeat(" ", barWidth-utf8.RuneCountInString(bar))

		b.WriteString(idStyle.Render(st.ID) + idPad + "  ")
		b.WriteString(barStyle(st.Percent).Render(bar) + barPad)
		b.WriteString(subtleStyle.Render(fmt.Sprintf(" %5dms, %5.1f%%", st.Milliseconds(), st.Percent)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

package bench

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hoaproject/Bench/internal/derrors"
)

const (
	// DefaultWidth is the report width used by String
	DefaultWidth = 80
	// BarChar draws the bars of the report
	BarChar = "|"

	// columns taken by the separators and the numeric fields of a line
	reservedColumns = 18
)

// Render draws the filtered snapshot as a bar chart, one line per mark:
//
//	<id>  <bar> <elapsed>ms, <percent>%
//
// Width must be at least 1. It returns an empty string when no mark is reported.
func (s *Statistics) Render(width int) (string, error) {
	if width < 1 {
		return "", derrors.NewInvalidWidthError(width)
	}
	return Draw(s.Snapshot(true), width)
}

// Fprint writes the rendered report to w
func (s *Statistics) Fprint(w io.Writer, width int) error {
	out, err := s.Render(width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// String renders the report with DefaultWidth
func (s *Statistics) String() string {
	out, _ := s.Render(DefaultWidth)
	return out
}

// Draw renders an already computed snapshot
func Draw(snap Snapshot, width int) (string, error) {
	if width < 1 {
		return "", derrors.NewInvalidWidthError(width)
	}

	margin := Margin(snap)
	barWidth := BarWidth(width, margin)

	var b strings.Builder
	for _, st := range snap {
		fmt.Fprintf(&b, "%-*s  %-*s %5dms, %5.1f%%\n",
			margin, st.ID,
			barWidth, Bar(st.Percent, barWidth),
			st.Milliseconds(),
			st.Percent)
	}
	return b.String(), nil
}

// Margin returns the length in characters of the longest id of snap
func Margin(snap Snapshot) int {
	margin := 0
	for _, st := range snap {
		margin = max(margin, utf8.RuneCountInString(st.ID))
	}
	return margin
}

// BarWidth returns the room left for bars in a report of the given width.
// It is zero when the ids leave no room.
func BarWidth(width, margin int) int {
	return max(width-margin-reservedColumns, 0)
}

// Bar returns the bar for percent within barWidth columns
func Bar(percent float64, barWidth int) string {
	n := int(math.Round(percent * float64(barWidth) / 100))
	if n <= 0 {
		return ""
	}
	return strings.Repeat(BarChar, n)
}

func roundMillis(d time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(time.Millisecond)))
}

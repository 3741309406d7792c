package components

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// StackedMixed renders a mixed number with the fraction written over a
// bar, e.g.
//
//	   5
//	1 ──
//	  12
//
// A zero fraction part renders the whole part alone; a zero whole part is
// omitted.
func StackedMixed(whole, num, den int) string {
	if num == 0 {
		return "\n" + strconv.Itoa(whole) + "\n"
	}
	frac := Stacked(strconv.Itoa(num), strconv.Itoa(den))
	if whole == 0 {
		return frac
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strconv.Itoa(whole)+" ", frac)
}

// Stacked writes top over bottom with a bar as wide as the wider one.
// Both sides are rendered strings, so styled fields work too.
func Stacked(top, bottom string) string {
	w := max(lipgloss.Width(top), lipgloss.Width(bottom))
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center,
		center.Render(top),
		strings.Repeat("─", w),
		center.Render(bottom),
	)
}

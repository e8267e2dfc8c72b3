package cmd

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"
)

// nameColor picks a stable 256-colour palette entry for a program name,
// skipping the 16 system colours and the greyscale ramp.
func nameColor(name string) lipgloss.Color {
	h := int(colorhash.HashString(name)) % 216
	if h < 0 {
		h = -h
	}
	return lipgloss.Color(strconv.Itoa(16 + h))
}

var matchStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// renderName colours name and emphasises the bytes at matched.
func renderName(name string, color bool, matched []int) string {
	if !color {
		return name
	}
	base := lipgloss.NewStyle().Foreground(nameColor(name))
	if len(matched) == 0 {
		return base.Render(name)
	}

	var b strings.Builder
	for i, r := range name {
		s := base
		if slices.Contains(matched, i) {
			s = matchStyle.Foreground(nameColor(name))
		}
		b.WriteString(s.Render(string(r)))
	}
	return b.String()
}

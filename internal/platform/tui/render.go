package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// cellWidth is the number of terminal columns drawn per grid cell, so that
// cells look roughly square.
const cellWidth = 2

// ScreenRenderer converts Screen buffers to styled strings. Styles are
// cached per color.
type ScreenRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewScreenRenderer creates a renderer bound to a lipgloss renderer. A nil
// renderer uses the process default (the local terminal).
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		renderer: r,
		styles:   make(map[core.Color]lipgloss.Style),
	}
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	st, ok := sr.styles[c]
	if !ok {
		st = sr.renderer.NewStyle().Background(lipgloss.Color(c.Hex()))
		sr.styles[c] = st
	}
	return st
}

// Render converts the presented frame of s to a string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*cellWidth + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y)

			// Collect consecutive cells with same color
			n := 0
			for x < s.Width() && s.Get(x, y) == startColor {
				n++
				x++
			}

			sb.WriteString(sr.style(startColor).Render(strings.Repeat(" ", n*cellWidth)))
		}
	}
	return sb.String()
}

// Style returns a plain style from the bound renderer.
func (sr *ScreenRenderer) Style() lipgloss.Style {
	return sr.renderer.NewStyle()
}

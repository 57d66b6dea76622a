package core

import (
	"strings"
)

// Surface is the drawing target a frame is rendered onto. Coordinates are
// in pixels.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c Color)
	// FillRect fills r with c. Parts outside the surface are clipped.
	FillRect(r Rect, c Color)
	// Present publishes everything drawn since the last Present.
	Present()
}

// Screen is a double-buffered grid of colored cells. It rasterizes pixel
// rectangles onto cells of cellSize pixels, so a 800x600 play area with
// 50px cells becomes a 16x12 grid. Drawing goes to the back buffer; readers
// only ever see what was last presented.
type Screen struct {
	width    int
	height   int
	cellSize int
	back     [][]Color
	front    [][]Color
	frames   uint64
}

// NewScreen creates a screen of width x height cells.
func NewScreen(width, height int, cellSize uint16) *Screen {
	s := &Screen{
		width:    width,
		height:   height,
		cellSize: int(cellSize),
	}
	if s.cellSize <= 0 {
		s.cellSize = 1
	}
	s.allocate()
	return s
}

// NewScreenFor creates a screen covering the given borders.
func NewScreenFor(b Borders, cell uint16) *Screen {
	cols, rows := GridSize(b, cell)
	return NewScreen(cols, rows, cell)
}

func (s *Screen) allocate() {
	s.back = make([][]Color, s.height)
	s.front = make([][]Color, s.height)
	for y := range s.back {
		s.back[y] = make([]Color, s.width)
		s.front[y] = make([]Color, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Frames returns how many frames have been presented.
func (s *Screen) Frames() uint64 {
	return s.frames
}

// Clear fills the back buffer with c.
func (s *Screen) Clear(c Color) {
	for y := range s.back {
		for x := range s.back[y] {
			s.back[y][x] = c
		}
	}
}

// FillRect fills every cell touched by the pixel rectangle r.
func (s *Screen) FillRect(r Rect, c Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0 := Clamp(floorDiv(r.X, s.cellSize), 0, s.width)
	y0 := Clamp(floorDiv(r.Y, s.cellSize), 0, s.height)
	x1 := Clamp(ceilDiv(r.Right(), s.cellSize), 0, s.width)
	y1 := Clamp(ceilDiv(r.Bottom(), s.cellSize), 0, s.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.back[y][x] = c
		}
	}
}

// Set colors a single cell of the back buffer.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.back[y][x] = c
}

// Present copies the back buffer to the front buffer.
func (s *Screen) Present() {
	for y := range s.back {
		copy(s.front[y], s.back[y])
	}
	s.frames++
}

// Get returns the presented color at the given cell.
// Returns the zero Color for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Color{}
	}
	return s.front[y][x]
}

// Row returns a copy of a presented row.
func (s *Screen) Row(y int) []Color {
	if y < 0 || y >= s.height {
		return make([]Color, s.width)
	}
	return append([]Color(nil), s.front[y]...)
}

// ASCII renders the presented frame as text using p to pick a rune per
// cell: '.' background, 'o' body, '@' head, '*' apple, '?' anything else.
func (s *Screen) ASCII(p Palette) string {
	glyphs := map[Color]rune{
		p.Background: '.',
		p.Body:       'o',
		p.Head:       '@',
		p.Apple:      '*',
	}

	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			r, ok := glyphs[s.front[y][x]]
			if !ok {
				r = '?'
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

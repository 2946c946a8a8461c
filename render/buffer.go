package render

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
	Depth float64 // View depth of the nearest write, +Inf when empty
}

var emptyCell = Cell{Rune: ' ', Fg: RgbHudText, Bg: RgbBackground, Depth: math.Inf(1)}

// RenderBuffer is a depth-tested cell compositor flushed to a tcell.Screen once per frame
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), empty cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Plot writes r at (x, y) if depth is nearer than what the cell holds
func (b *RenderBuffer) Plot(x, y int, depth float64, r rune, fg RGB) bool {
	if !b.inBounds(x, y) {
		return false
	}
	dst := &b.cells[y*b.width+x]
	if depth >= dst.Depth {
		return false
	}
	dst.Rune = r
	dst.Fg = fg
	dst.Depth = depth
	return true
}

// Text writes an overlay string at (x, y), ignoring depth; zero bg keeps the cell background
func (b *RenderBuffer) Text(x, y int, s string, fg, bg RGB, attrs tcell.AttrMask) int {
	col := x
	for _, r := range s {
		if b.inBounds(col, y) {
			dst := &b.cells[y*b.width+col]
			dst.Rune = r
			dst.Fg = fg
			if bg != RGBBlack {
				dst.Bg = bg
			}
			dst.Attrs = attrs
			dst.Depth = math.Inf(-1)
		}
		col++
	}
	return col - x
}

// FillRow sets the background of row y
func (b *RenderBuffer) FillRow(y int, bg RGB) {
	if y < 0 || y >= b.height {
		return
	}
	row := b.cells[y*b.width : (y+1)*b.width]
	for i := range row {
		row[i].Bg = bg
	}
}

// FlushToScreen writes every cell to screen; caller calls Show
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := &b.cells[y*b.width+x]
			style := tcell.StyleDefault.
				Foreground(c.Fg.Color()).
				Background(c.Bg.Color()).
				Attributes(c.Attrs)
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

// Lines returns the buffer as text rows with trailing spaces trimmed
func (b *RenderBuffer) Lines() []string {
	lines := make([]string, b.height)
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.Reset()
		for x := 0; x < b.width; x++ {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

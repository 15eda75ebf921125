package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"grove-cli/internal/grove"
)

// The layout engine thinks in pixels; the terminal thinks in cells. One cell
// is treated as a 10x20px tile, so a slot clamped to 80..220px wide becomes a
// stone card 8..22 columns wide with roughly the right aspect ratio.
const (
	cellPxW = 10
	cellPxH = 20
)

// chrome rows above and below the grove body (header + footer).
const groveChromeRows = 4

// canvasSize is the grove body area in virtual pixels.
func (m *appModel) canvasSize() (float64, float64) {
	rows := m.height - groveChromeRows
	if rows < 1 {
		rows = 1
	}
	cols := m.width
	if cols < 1 {
		cols = 1
	}
	return float64(cols * cellPxW), float64(rows * cellPxH)
}

// cellRect is a slot mapped onto the terminal grid.
type cellRect struct {
	x, y, w, h int
}

func slotToCells(s grove.Slot) cellRect {
	r := cellRect{
		x: s.X / cellPxW,
		y: s.Y / cellPxH,
		w: s.W / cellPxW,
		h: s.H / cellPxH,
	}
	if r.w < 3 {
		r.w = 3
	}
	if r.h < 3 {
		r.h = 3
	}
	return r
}

// canvas is a fixed-size grid of terminal lines that blocks are painted onto
// at absolute positions. Slots never overlap, so splices never collide.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, lines: lines}
}

// paint splices block into the canvas with its top-left corner at (x, y),
// ANSI-aware. Parts outside the canvas are dropped.
func (c *canvas) paint(x, y int, block string) {
	if x >= c.width {
		return
	}
	for i, ln := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		w := xansi.StringWidth(ln)
		if x+w > c.width {
			ln = xansi.Cut(ln, 0, c.width-x)
			w = xansi.StringWidth(ln)
		}
		left := xansi.Cut(c.lines[row], 0, x)
		leftW := xansi.StringWidth(left)
		if leftW < x {
			left += strings.Repeat(" ", x-leftW)
		}
		right := xansi.Cut(c.lines[row], x+w, c.width)
		c.lines[row] = left + ln + right
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so stacked sections compose without drift.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			if width <= 0 {
				ln = ""
			} else if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln = ln + strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

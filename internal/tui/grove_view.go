package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grove-cli/internal/grove"
	"grove-cli/internal/model"
)

// stoneRenderer paints one tombstone card per slot onto the shared canvas.
// It implements grove.SlotRenderer; the layout engine decides where, this
// decides what a stone looks like.
type stoneRenderer struct {
	canvas   *canvas
	selected string // seed id, "" for none
}

func (r *stoneRenderer) RenderSlot(slot grove.Slot, seed model.Seed) {
	rect := slotToCells(slot)
	r.canvas.paint(rect.x, rect.y, renderStone(seed, rect.w, rect.h, seed.ID == r.selected))
}

// renderStone renders a single tombstone card exactly w columns by h rows.
func renderStone(seed model.Seed, w, h int, selected bool) string {
	cls := seed.Class.OrDefault()
	border := colorStoneBorder
	if selected {
		border = colorSelectedBorder
	}

	innerW := w - 2
	innerH := h - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	head := lipgloss.NewStyle().Foreground(classColor(cls)).Bold(selected).Render(classGlyph(cls))
	if n := totalMessages(seed); n > 0 {
		head += styleMuted().Render(fmt.Sprintf(" %d", n))
	}

	body := excerpt(seed.Ghost, innerW, innerH-1)
	content := normalizePane(head+"\n"+body, innerW, innerH)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	return box.Render(content)
}

func totalMessages(seed model.Seed) int {
	n := 0
	for _, t := range seed.Threads {
		n += len(t.Messages)
	}
	return n
}

// excerpt word-wraps text into at most maxLines lines of width w, ending with
// an ellipsis when truncated.
func excerpt(text string, w, maxLines int) string {
	words := strings.Fields(text)
	if len(words) == 0 || w < 1 || maxLines < 1 {
		return ""
	}

	var lines []string
	cur := ""
	for _, word := range words {
		if len(word) > w {
			word = word[:w]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= w:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	lines = append(lines, cur)

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last) >= w {
			last = last[:w-1]
		}
		lines[maxLines-1] = last + "…"
	}
	return strings.Join(lines, "\n")
}

// renderGroveBody paints every filtered seed into a full-size canvas.
func (m *appModel) renderGroveBody() string {
	rows := m.height - groveChromeRows
	if rows < 1 {
		rows = 1
	}
	if len(m.seeds) == 0 {
		empty := styleMuted().Render(m.emptyGroveMessage())
		return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, empty)
	}

	c := newCanvas(m.width, rows)
	pxW, pxH := m.canvasSize()
	grove.Render(m.seeds, pxW, pxH, &stoneRenderer{canvas: c, selected: m.selectedSeedID()})
	return c.String()
}

func (m *appModel) emptyGroveMessage() string {
	if m.filter != grove.FilterAll {
		if cls, ok := model.ParseClass(m.filter); ok {
			return "No " + string(cls) + " seeds here. Press 0 to see all."
		}
	}
	return "The grove is empty. Ask the ghost something, or press D for demo seeds."
}

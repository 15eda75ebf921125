package grove

import (
	"math"

	"grove-cli/internal/model"
)

// Layout constants, in canvas pixels. Stones keep a fixed portrait aspect
// (tombstone silhouette); rows get extra breathing room over columns.
const (
	minSidePad    = 32
	sidePadFrac   = 0.06
	minTopPad     = 24
	topPadFrac    = 0.06
	minBottomPad  = 100 // bottom reserved larger to avoid crowding lower chrome
	bottomPadFrac = 0.18

	slotCellFrac = 0.78
	minSlotW     = 80
	maxSlotW     = 220
	slotAspect   = 1.25

	verticalSpacing = 1.55
	minRowGap       = 40
)

// Slot is one rectangular placement for exactly one seed.
type Slot struct {
	X, Y, W, H int
}

// Layout computes a non-overlapping row-major grid of n slots inside a W×H
// canvas. It has no persistent state: callers recompute from scratch whenever
// the collection, the filter, or the canvas size changes.
func Layout(n int, viewW, viewH float64) []Slot {
	if n <= 0 {
		return nil
	}

	leftPad := math.Max(minSidePad, viewW*sidePadFrac)
	rightPad := leftPad
	topPad := math.Max(minTopPad, viewH*topPadFrac)
	bottomPad := math.Max(minBottomPad, viewH*bottomPadFrac)

	usableW := math.Max(1, viewW-leftPad-rightPad)
	usableH := math.Max(1, viewH-topPad-bottomPad)

	cols := int(math.Ceil(math.Sqrt(float64(n) * usableW / usableH)))
	minCols := 2
	if n < minCols {
		minCols = n
	}
	if cols < minCols {
		cols = minCols
	}
	if cols > n {
		cols = n
	}
	rows := (n + cols - 1) / cols

	cellW := usableW / float64(cols)
	slotW := math.Max(minSlotW, math.Min(cellW*slotCellFrac, maxSlotW))
	slotH := slotW * slotAspect

	totalW := float64(cols) * slotW
	totalH := float64(rows) * slotH

	gapX := 0.0
	if cols > 1 {
		gapX = (usableW - totalW) / float64(cols-1)
	}
	gapY := 0.0
	if rows > 1 {
		gapY = math.Max(minRowGap, (usableH-totalH)/float64(rows-1)*verticalSpacing)
	}
	// Slot-size floors can dominate tiny viewports; never let gaps go negative.
	if gapX < 0 {
		gapX = 0
	}
	if gapY < 0 {
		gapY = 0
	}

	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		r := i / cols
		c := i % cols
		slots = append(slots, Slot{
			X: int(math.Round(leftPad + float64(c)*(slotW+gapX))),
			Y: int(math.Round(topPad + float64(r)*(slotH+gapY))),
			W: int(math.Round(slotW)),
			H: int(math.Round(slotH)),
		})
	}
	return slots
}

// SlotRenderer is the rendering port: the engine stays pure and the drawing
// technology (terminal grid here, anything elsewhere) is swappable.
type SlotRenderer interface {
	RenderSlot(slot Slot, seed model.Seed)
}

// Render lays out the (already filtered) seeds and invokes the renderer once
// per slot. Zero seeds render nothing; any empty-state message is the caller's
// concern.
func Render(seeds []model.Seed, viewW, viewH float64, r SlotRenderer) {
	slots := Layout(len(seeds), viewW, viewH)
	for i, slot := range slots {
		r.RenderSlot(slot, seeds[i])
	}
}

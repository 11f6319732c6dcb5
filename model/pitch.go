package model

import "fmt"

// ZoneID names one cell of a pitch division. IDs start at 1.
type ZoneID int

// PitchDivision partitions the field into a fixed set of rectangular zones.
// Every point on the field belongs to exactly one zone and the set never
// changes after construction.
type PitchDivision interface {
	AllZoneIDs() []ZoneID
	// Zone panics for an id that is not part of the division.
	Zone(id ZoneID) Rect
	ZoneFor(p Point) ZoneID
}

// GridPitchDivision splits the field lines into Cols x Rows equal zones.
// Zones are numbered row-major starting from the friendly-goal, negative-y
// corner.
type GridPitchDivision struct {
	cols  int
	rows  int
	cellW float64
	cellH float64
	lines Rect
	ids   []ZoneID
}

func NewGridPitchDivision(field Field, cols, rows int) *GridPitchDivision {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("pitch division needs positive dimensions, got %dx%d", cols, rows))
	}
	lines := field.FieldLines()
	g := &GridPitchDivision{
		cols:  cols,
		rows:  rows,
		cellW: lines.Width() / float64(cols),
		cellH: lines.Height() / float64(rows),
		lines: lines,
		ids:   make([]ZoneID, 0, cols*rows),
	}
	for i := 1; i <= cols*rows; i++ {
		g.ids = append(g.ids, ZoneID(i))
	}
	return g
}

// NewEighteenZoneDivision is 6 columns along the length by 3 rows.
func NewEighteenZoneDivision(field Field) *GridPitchDivision {
	return NewGridPitchDivision(field, 6, 3)
}

// NewEightZoneDivision is the coarse 4 x 2 division.
func NewEightZoneDivision(field Field) *GridPitchDivision {
	return NewGridPitchDivision(field, 4, 2)
}

// AllZoneIDs returns a fresh slice in stable ascending order.
func (g *GridPitchDivision) AllZoneIDs() []ZoneID {
	out := make([]ZoneID, len(g.ids))
	copy(out, g.ids)
	return out
}

func (g *GridPitchDivision) Zone(id ZoneID) Rect {
	if id < 1 || int(id) > g.cols*g.rows {
		panic(fmt.Sprintf("zone %d is not part of a %dx%d pitch division", id, g.cols, g.rows))
	}
	idx := int(id) - 1
	col := idx % g.cols
	row := idx / g.cols
	xMin := g.lines.XMin + float64(col)*g.cellW
	yMin := g.lines.YMin + float64(row)*g.cellH
	return Rect{XMin: xMin, YMin: yMin, XMax: xMin + g.cellW, YMax: yMin + g.cellH}
}

// ZoneFor maps p to its zone. Points off the field map to the nearest edge
// zone.
func (g *GridPitchDivision) ZoneFor(p Point) ZoneID {
	col := int((p.X - g.lines.XMin) / g.cellW)
	row := int((p.Y - g.lines.YMin) / g.cellH)
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return ZoneID(row*g.cols + col + 1)
}

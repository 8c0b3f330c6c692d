package grid

// fillDrag captures a fill-handle drag: the selection rectangle frozen at
// drag start, and the current candidate extension region.
type fillDrag struct {
	fixed  CellRect // normalized at capture; never changes during the drag
	ext    CellRect // candidate extension, normalized
	hasExt bool
}

// FillHandleRect returns the pixel rectangle of the draggable knob at the
// selection's bottom-right corner, sized by the configured tolerance.
// The second result is false when there is no selection or an edit is in
// progress (the knob and the editor are mutually exclusive).
func (g *Grid) FillHandleRect() (Rect, bool) {
	if !g.sel.Valid() || g.edit.Active() {
		return Rect{}, false
	}
	n := g.sel.Rect().Normalized()
	cell := g.view.CellRect(n.X2, n.Y2)
	tol := g.handleTol
	return Rect{
		X: cell.X + cell.W - tol,
		Y: cell.Y + cell.H - tol,
		W: tol * 2,
		H: tol * 2,
	}, true
}

// updateFillExtension projects the pointer's cell onto a single-axis
// extension of the fixed region. The axis with the larger deviation from
// the fixed region's center wins; the candidate area grows past the edge
// the pointer is beyond on that axis only. A pointer inside the fixed
// region clears the candidate.
//
// The larger-deviation tie-break on diagonal drags is a heuristic carried
// over from the behavior users already know, not a contract.
func (f *fillDrag) updateFillExtension(px, py int) {
	f.hasExt = false
	if px == NoCell || py == NoCell {
		return
	}
	if f.fixed.ContainsCell(px, py) {
		return
	}

	centerX := float32(f.fixed.X1+f.fixed.X2) / 2
	centerY := float32(f.fixed.Y1+f.fixed.Y2) / 2
	devX := absf(float32(px) - centerX)
	devY := absf(float32(py) - centerY)

	if devY >= devX {
		// Vertical extension, same column span as the fixed region.
		switch {
		case py > f.fixed.Y2:
			f.ext = CellRect{X1: f.fixed.X1, X2: f.fixed.X2, Y1: f.fixed.Y2 + 1, Y2: py}
			f.hasExt = true
		case py < f.fixed.Y1:
			f.ext = CellRect{X1: f.fixed.X1, X2: f.fixed.X2, Y1: py, Y2: f.fixed.Y1 - 1}
			f.hasExt = true
		}
		return
	}

	// Horizontal extension, same row span as the fixed region.
	switch {
	case px > f.fixed.X2:
		f.ext = CellRect{X1: f.fixed.X2 + 1, X2: px, Y1: f.fixed.Y1, Y2: f.fixed.Y2}
		f.hasExt = true
	case px < f.fixed.X1:
		f.ext = CellRect{X1: px, X2: f.fixed.X1 - 1, Y1: f.fixed.Y1, Y2: f.fixed.Y2}
		f.hasExt = true
	}
}

// mod is the mathematical modulus: always in [0, m).
func mod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

// fillChanges computes the value propagation for a completed fill drag.
// Orientation follows the extension's shape: equal width means vertical,
// equal height means horizontal. Source values are taken from the fixed
// region and cycled positionally, one source row (or column) per
// destination row (or column), wrapping around the source range. Absent
// source values propagate as deletions.
func fillChanges(data DataSource, fixed, ext CellRect) []CellChange {
	fixed = fixed.Normalized()
	ext = ext.Normalized()

	var changes []CellChange
	vertical := ext.Cols() == fixed.Cols()

	for y := ext.Y1; y <= ext.Y2; y++ {
		for x := ext.X1; x <= ext.X2; x++ {
			srcX, srcY := x, y
			if vertical {
				srcY = fixed.Y1 + mod(y-fixed.Y1, fixed.Rows())
			} else {
				srcX = fixed.X1 + mod(x-fixed.X1, fixed.Cols())
			}
			if v, ok := data.Value(srcX, srcY); ok {
				changes = append(changes, NewCellChange(x, y, v))
			} else {
				changes = append(changes, NewCellDelete(x, y))
			}
		}
	}
	return changes
}

// applyFill finishes a fill-handle drag: emits one change per destination
// cell and replaces the selection with the union of the fixed region and
// the extension.
func (g *Grid) applyFill() {
	if !g.fill.hasExt {
		return
	}
	g.emitChanges(fillChanges(g.data, g.fill.fixed, g.fill.ext))

	union := g.fill.fixed
	if g.fill.ext.X1 < union.X1 {
		union.X1 = g.fill.ext.X1
	}
	if g.fill.ext.Y1 < union.Y1 {
		union.Y1 = g.fill.ext.Y1
	}
	if g.fill.ext.X2 > union.X2 {
		union.X2 = g.fill.ext.X2
	}
	if g.fill.ext.Y2 > union.Y2 {
		union.Y2 = g.fill.ext.Y2
	}
	g.setSelection(union.X1, union.Y1, union.X2, union.Y2)
	g.fill = fillDrag{}
}

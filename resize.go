package grid

// resizeContext is captured at resize-drag start and consumed only while
// the drag is in progress; release discards it.
type resizeContext struct {
	axisStart float32 // pointer position on the resize axis at drag start
	original  float32 // size of the row/column when the drag began
	index     int
}

// columnBoundaryAt returns the column whose right boundary lies within the
// resize tolerance of the pointer, when the pointer is inside the column
// header band. Frozen and scrolled columns both qualify.
func (g *Grid) columnBoundaryAt(p Vec2) (int, bool) {
	if p.Y >= g.headerH || p.X < g.headerW {
		return NoCell, false
	}
	for i, cell := range g.view.Cols.Cells {
		if absf(p.X-g.view.Cols.End[i]) <= g.boundaryTol {
			return cell, true
		}
	}
	return NoCell, false
}

// rowBoundaryAt is the row-axis counterpart of columnBoundaryAt, scanning
// the row header band.
func (g *Grid) rowBoundaryAt(p Vec2) (int, bool) {
	if p.X >= g.headerW || p.Y < g.headerH {
		return NoCell, false
	}
	for i, cell := range g.view.Rows.Cells {
		if absf(p.Y-g.view.Rows.End[i]) <= g.boundaryTol {
			return cell, true
		}
	}
	return NoCell, false
}

// trackResize converts pointer movement into a live size-change request,
// clamped to the configured minimum. The collaborator applies the new size
// (it owns the SizeProvider the engine reads), so the resize tracks
// visually while the drag is still in progress.
func (g *Grid) trackResize(p Vec2) {
	var (
		axis    Axis
		current float32
		minSize float32
	)
	switch g.state {
	case StateResizingColumn:
		axis = AxisColumn
		current = p.X
		minSize = g.minColWidth
	case StateResizingRow:
		axis = AxisRow
		current = p.Y
		minSize = g.minRowHeight
	default:
		return
	}

	newSize := g.resizeCtx.original + (current - g.resizeCtx.axisStart)
	if newSize < minSize {
		newSize = minSize
	}
	if g.onSizeChange != nil {
		g.onSizeChange(axis, g.resizeCtx.index, newSize)
	}
	g.markViewDirty()
}

package grid

// AxisWindow is the computed visible window for one axis: the ordered cell
// indices on screen together with their cumulative pixel start/end offsets.
// It is a cache derived from (frozen count, size provider, leading offset,
// scroll offset, viewport extent) and must be recomputed the instant any of
// those inputs change.
//
// Invariants:
//   - Cells is strictly increasing except that a frozen leading block always
//     starts at index 0 regardless of scroll offset.
//   - Start[i] == End[i-1] for every i > 0: pixel coverage is contiguous
//     even across the frozen/scrolled index jump.
//   - End[last] >= the extent requested at build time (the last cell may
//     overflow the viewport; it is never cut mid-cell).
type AxisWindow struct {
	Cells []int
	Start []float32
	End   []float32

	frozen  int
	scroll  int
	leading float32
	sizes   SizeProvider

	// Pixel offset where the first scrolled (non-frozen) cell begins.
	// Anchor for out-of-window origin walks.
	scrolledBase float32
}

// minCellSpan is the smallest pixel span a cell occupies in the window,
// whatever its provider reports.
const minCellSpan float32 = 1

// ComputeAxisWindow builds the visible window for one axis.
//
// When frozen > 0, indices 0..frozen-1 are always listed first, starting at
// leading pixels, regardless of the viewport extent. Scrolled cells resume
// from max(scroll, frozen) and accumulate until the viewport extent is
// covered; the cell that crosses the extent is included whole.
func ComputeAxisWindow(frozen int, sizes SizeProvider, leading float32, scroll int, extent float32) AxisWindow {
	if frozen < 0 {
		frozen = 0
	}
	if scroll < 0 {
		scroll = 0
	}

	w := AxisWindow{
		Cells:   make([]int, 0, 32),
		Start:   make([]float32, 0, 32),
		End:     make([]float32, 0, 32),
		frozen:  frozen,
		scroll:  scroll,
		leading: leading,
		sizes:   sizes,
	}

	pos := leading
	for i := 0; i < frozen; i++ {
		size := sizes.Size(i)
		w.Cells = append(w.Cells, i)
		w.Start = append(w.Start, pos)
		w.End = append(w.End, pos+size)
		pos += size
	}
	w.scrolledBase = pos

	resume := scroll
	if resume < frozen {
		resume = frozen
	}
	for idx := resume; pos < extent; idx++ {
		size := sizes.Size(idx)
		if size < minCellSpan {
			// A non-positive size would stall the accumulation forever;
			// hidden cells degrade to a minimal span instead.
			size = minCellSpan
		}
		w.Cells = append(w.Cells, idx)
		w.Start = append(w.Start, pos)
		w.End = append(w.End, pos+size)
		pos += size
	}

	return w
}

// Len returns the number of cells in the window.
func (w *AxisWindow) Len() int { return len(w.Cells) }

// CellAt resolves a pixel offset to the cell whose [start, end) span
// contains it. Returns NoCell when the offset falls outside every listed
// span (e.g. in the leading header band or past the last cell).
func (w *AxisWindow) CellAt(px float32) int {
	for i, cell := range w.Cells {
		if px >= w.Start[i] && px < w.End[i] {
			return cell
		}
	}
	return NoCell
}

// indexOf returns the window position of a cell, or -1 if not listed.
func (w *AxisWindow) indexOf(cell int) int {
	for i, c := range w.Cells {
		if c == cell {
			return i
		}
	}
	return -1
}

// Visible reports whether the cell is listed in the window at all.
func (w *AxisWindow) Visible(cell int) bool { return w.indexOf(cell) >= 0 }

// FullyVisible reports whether the cell is listed and its span ends at or
// before the given extent, i.e. it is not the partially overflowing tail.
func (w *AxisWindow) FullyVisible(cell int, extent float32) bool {
	i := w.indexOf(cell)
	return i >= 0 && w.End[i] <= extent
}

// Origin returns the pixel start offset of a cell. Cells inside the window
// return their cached start. Cells outside it are resolved by walking from
// the nearest anchor (the frozen origin or the scroll origin) accumulating
// sizes; cost is proportional to the distance, which is acceptable because
// callers only ask for near-boundary cells (e.g. a selection edge just off
// screen). Cells scrolled past the frozen block resolve to offsets behind
// the scrolled base, which may be negative.
func (w *AxisWindow) Origin(cell int) float32 {
	if i := w.indexOf(cell); i >= 0 {
		return w.Start[i]
	}

	if cell < w.frozen {
		pos := w.leading
		for i := 0; i < cell; i++ {
			pos += w.sizes.Size(i)
		}
		return pos
	}

	resume := w.scroll
	if resume < w.frozen {
		resume = w.frozen
	}
	if cell >= resume {
		pos := w.scrolledBase
		for i := resume; i < cell; i++ {
			pos += w.sizes.Size(i)
		}
		return pos
	}

	// Between the frozen block and the scroll origin: scrolled out of view.
	pos := w.scrolledBase
	for i := cell; i < resume; i++ {
		pos -= w.sizes.Size(i)
	}
	return pos
}

// Span returns the pixel start offset and size of a cell, tolerating
// out-of-window queries the same way Origin does.
func (w *AxisWindow) Span(cell int) (start, size float32) {
	return w.Origin(cell), w.sizes.Size(cell)
}

// LastVisible returns the highest cell index in the window, or NoCell when
// the window is empty.
func (w *AxisWindow) LastVisible() int {
	if len(w.Cells) == 0 {
		return NoCell
	}
	return w.Cells[len(w.Cells)-1]
}

// Viewport pairs the two axis windows of the visible grid region.
type Viewport struct {
	Cols AxisWindow
	Rows AxisWindow
}

// CellAt resolves a pixel point to logical cell coordinates, each axis
// independently. Either coordinate may be NoCell.
func (v *Viewport) CellAt(p Vec2) (x, y int) {
	return v.Cols.CellAt(p.X), v.Rows.CellAt(p.Y)
}

// CellRect returns the pixel rectangle of a logical cell. Out-of-window
// cells are resolved by the per-axis origin walk.
func (v *Viewport) CellRect(x, y int) Rect {
	cx, cw := v.Cols.Span(x)
	cy, ch := v.Rows.Span(y)
	return Rect{X: cx, Y: cy, W: cw, H: ch}
}

// RangeRect returns the pixel rectangle covering a normalized cell range.
func (v *Viewport) RangeRect(r CellRect) Rect {
	n := r.Normalized()
	tl := v.CellRect(n.X1, n.Y1)
	br := v.CellRect(n.X2, n.Y2)
	return Rect{X: tl.X, Y: tl.Y, W: br.X + br.W - tl.X, H: br.Y + br.H - tl.Y}
}

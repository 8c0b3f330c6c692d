package grid

import "strings"

// DataSource is the engine's read path to the cell data it navigates over.
// Cell values live with the host; the engine never stores them.
type DataSource interface {
	// Dims returns the logical grid dimensions.
	Dims() (cols, rows int)

	// Value returns the source representation of a cell, or ok=false when
	// the cell is absent. Clipboard export and fill propagation read this.
	Value(x, y int) (string, bool)

	// DisplayValue returns what the renderer shows for a cell.
	DisplayValue(x, y int) (string, bool)

	// EditValue returns the text that seeds the editor when the user opens
	// a cell, or ok=false when the cell has nothing to edit.
	EditValue(x, y int) (string, bool)

	// ReadOnly reports whether writes to the cell must be dropped.
	ReadOnly(x, y int) bool
}

// TargetSource is an optional extension of DataSource: cell content that
// embeds clickable sub-regions (links, buttons, checkboxes) declares them
// here. The engine detects the interface once at construction, not per
// frame.
type TargetSource interface {
	CellTargets(x, y int) []TargetSpec
}

// Default configuration values.
const (
	DefaultColumnWidth         float32 = 100
	DefaultRowHeight           float32 = 25
	DefaultRowHeaderWidth      float32 = 60
	DefaultColumnHeaderHeight  float32 = 25
	DefaultScrollStep          float32 = 40
	DefaultMinColumnWidth      float32 = 20
	DefaultMinRowHeight        float32 = 16
	DefaultFillHandleTolerance float32 = 6
	DefaultResizeTolerance     float32 = 5
	DefaultDoubleClickInterval float32 = 0.3
)

// Grid is the interaction engine. It owns the selection, the edit state and
// the scroll offset; everything geometric is a cache derived from the size
// providers, the frozen spans and the viewport extent, recomputed whenever
// any of those inputs change.
//
// All methods must be called from the host's event/render thread; the
// engine is single-threaded and never blocks.
type Grid struct {
	data    DataSource
	targets TargetSource // nil when data does not declare click targets

	// Configuration
	colSizes, rowSizes SizeProvider
	frozenCols         int
	frozenRows         int
	headerW, headerH   float32
	scrollStep         float32
	minColWidth        float32
	minRowHeight       float32
	handleTol          float32
	boundaryTol        float32
	binSize            float32
	doubleClickTime    float32

	// Outbound callbacks
	onChange           func([]CellChange)
	onSelectionChanged func(x1, y1, x2, y2 int)
	onSizeChange       func(axis Axis, index int, px float32)
	onScroll           func(x, y float32)
	schedule           func(fn func()) (cancel func())

	// Durable state
	sel    Selection
	edit   EditState
	scroll ScrollOffset

	// Interaction state
	state     InteractionState
	fill      fillDrag
	resizeCtx resizeContext
	armed     *HitTarget

	// Derived caches
	view        Viewport
	hits        *HitIndex
	viewSize    Vec2
	windowDirty bool
	hitDirty    bool

	cancelPending func()

	// Double-click tracking
	clock       float32
	lastClickAt float32
	lastClickX  int
	lastClickY  int
}

// Option configures a Grid instance.
type Option func(*Grid)

// WithColumnSizes sets the column width provider.
func WithColumnSizes(p SizeProvider) Option {
	return func(g *Grid) { g.colSizes = p }
}

// WithRowSizes sets the row height provider.
func WithRowSizes(p SizeProvider) Option {
	return func(g *Grid) { g.rowSizes = p }
}

// WithFrozen sets the leading frozen column and row counts.
func WithFrozen(cols, rows int) Option {
	return func(g *Grid) { g.frozenCols, g.frozenRows = cols, rows }
}

// WithHeaderBands sets the row-header band width and the column-header band
// height; cells start past these leading offsets.
func WithHeaderBands(width, height float32) Option {
	return func(g *Grid) { g.headerW, g.headerH = width, height }
}

// WithScrollStep sets the fixed pixel-per-cell scroll granularity used to
// translate the whole-cell scroll offset into a host scroll position.
func WithScrollStep(px float32) Option {
	return func(g *Grid) { g.scrollStep = px }
}

// WithMinCellSize sets the smallest width and height a resize drag can
// produce.
func WithMinCellSize(width, height float32) Option {
	return func(g *Grid) { g.minColWidth, g.minRowHeight = width, height }
}

// WithFillHandleTolerance sets the pixel radius around the selection's
// bottom-right corner that grabs the fill handle.
func WithFillHandleTolerance(px float32) Option {
	return func(g *Grid) { g.handleTol = px }
}

// WithResizeTolerance sets the pixel distance from a row/column boundary
// inside a header band that starts a resize drag.
func WithResizeTolerance(px float32) Option {
	return func(g *Grid) { g.boundaryTol = px }
}

// WithHitBinSize sets the bucket edge length of the hit-test spatial hash.
func WithHitBinSize(px float32) Option {
	return func(g *Grid) { g.binSize = px }
}

// WithDoubleClickInterval sets the maximum seconds between two clicks on
// the same cell that count as a double click.
func WithDoubleClickInterval(seconds float32) Option {
	return func(g *Grid) { g.doubleClickTime = seconds }
}

// WithChangeHandler sets the sole write path: every cell mutation the
// engine produces arrives here as an ordered batch. A nil change Value
// signals deletion.
func WithChangeHandler(fn func([]CellChange)) Option {
	return func(g *Grid) { g.onChange = fn }
}

// WithSelectionHandler sets the selection notification. Coordinates are
// always normalized before emission.
func WithSelectionHandler(fn func(x1, y1, x2, y2 int)) Option {
	return func(g *Grid) { g.onSelectionChanged = fn }
}

// WithSizeChangeHandler sets the resize notification. The host owns the
// SizeProvider the engine reads, so applying the new size there makes the
// resize track live.
func WithSizeChangeHandler(fn func(axis Axis, index int, px float32)) Option {
	return func(g *Grid) { g.onSizeChange = fn }
}

// WithScrollHandler sets the host scroll position request, in pixels
// (scroll offset times scroll step, per axis).
func WithScrollHandler(fn func(x, y float32)) Option {
	return func(g *Grid) { g.onScroll = fn }
}

// WithScheduler sets the repaint scheduler. The engine calls schedule with
// a revalidation callback whenever a cache input changes and cancels any
// previously scheduled one first, so at most one repaint is ever pending.
// Without a scheduler, revalidation happens at the start of the next Frame.
func WithScheduler(schedule func(fn func()) (cancel func())) Option {
	return func(g *Grid) { g.schedule = schedule }
}

// New creates a grid interaction engine over the given data source.
//
//	g := grid.New(source,
//	    grid.WithFrozen(1, 1),
//	    grid.WithColumnSizes(grid.SliceSizes(widths, 100)),
//	    grid.WithChangeHandler(applyChanges),
//	)
func New(data DataSource, opts ...Option) *Grid {
	g := &Grid{
		data:            data,
		colSizes:        UniformSizes(DefaultColumnWidth),
		rowSizes:        UniformSizes(DefaultRowHeight),
		headerW:         DefaultRowHeaderWidth,
		headerH:         DefaultColumnHeaderHeight,
		scrollStep:      DefaultScrollStep,
		minColWidth:     DefaultMinColumnWidth,
		minRowHeight:    DefaultMinRowHeight,
		handleTol:       DefaultFillHandleTolerance,
		boundaryTol:     DefaultResizeTolerance,
		binSize:         DefaultHitBinSize,
		doubleClickTime: DefaultDoubleClickInterval,
		sel:             noSelection,
		edit:            noEdit,
		windowDirty:     true,
		hitDirty:        true,
		lastClickAt:     -1,
		lastClickX:      NoCell,
		lastClickY:      NoCell,
	}

	for _, opt := range opts {
		opt(g)
	}

	// Shape of the content accessor is resolved exactly once.
	if ts, ok := data.(TargetSource); ok {
		g.targets = ts
	}
	g.hits = NewHitIndex(g.binSize)

	return g
}

// Frame processes one frame of input against the given viewport size.
// Caches are revalidated before any hit test or coordinate conversion so
// handlers never act on a window older than the inputs known at frame
// start.
func (g *Grid) Frame(input *InputState, viewSize Vec2, dt float32) {
	g.clock += dt
	input.UpdateKeyRepeat(dt)

	if viewSize != g.viewSize {
		g.viewSize = viewSize
		g.windowDirty = true
	}
	g.handleWheel(input)
	g.Revalidate()

	g.handlePointer(input)
	g.handleKeyboard(input)
}

// Revalidate recomputes the viewport windows and the hit-test index if any
// of their inputs changed. Safe to call redundantly; does nothing when the
// caches are current.
func (g *Grid) Revalidate() {
	if g.windowDirty {
		g.view.Cols = ComputeAxisWindow(g.frozenCols, g.colSizes, g.headerW, g.scroll.X, g.viewSize.X)
		g.view.Rows = ComputeAxisWindow(g.frozenRows, g.rowSizes, g.headerH, g.scroll.Y, g.viewSize.Y)
		g.windowDirty = false
		g.hitDirty = true
		stateLogger.Debug("viewport recomputed",
			"cols", g.view.Cols.Len(), "rows", g.view.Rows.Len(),
			"scrollX", g.scroll.X, "scrollY", g.scroll.Y)
	}
	if g.hitDirty {
		g.rebuildHitIndex()
		g.hitDirty = false
	}
}

// markViewDirty invalidates both axis windows (and therefore the hit index).
func (g *Grid) markViewDirty() {
	g.windowDirty = true
	g.scheduleRevalidate()
}

// MarkContentDirty tells the engine displayed content changed: the hit-test
// index is rebuilt on the next repaint opportunity. Hosts call this after
// applying a change batch.
func (g *Grid) MarkContentDirty() {
	g.hitDirty = true
	g.scheduleRevalidate()
}

// scheduleRevalidate debounces revalidation through the host scheduler:
// cancel-and-reschedule keeps at most one repaint pending.
func (g *Grid) scheduleRevalidate() {
	if g.schedule == nil {
		return
	}
	if g.cancelPending != nil {
		g.cancelPending()
	}
	g.cancelPending = g.schedule(func() {
		g.cancelPending = nil
		g.Revalidate()
	})
}

// rebuildHitIndex rebuilds the spatial hash from the click targets declared
// by every visible cell. Full rebuild, never incremental.
func (g *Grid) rebuildHitIndex() {
	g.hits.Reset()
	if g.targets == nil {
		return
	}
	for _, y := range g.view.Rows.Cells {
		for _, x := range g.view.Cols.Cells {
			specs := g.targets.CellTargets(x, y)
			if len(specs) == 0 {
				continue
			}
			cell := g.view.CellRect(x, y)
			for _, spec := range specs {
				g.hits.Insert(HitTarget{
					CellX: x,
					CellY: y,
					Rect: Rect{
						X: cell.X + spec.Offset.X,
						Y: cell.Y + spec.Offset.Y,
						W: spec.Size.X,
						H: spec.Size.Y,
					},
					OnClick: spec.OnClick,
				})
			}
		}
	}
	stateLogger.Debug("hit index rebuilt", "targets", g.hits.Len())
}

// handleWheel converts wheel notches into whole-cell scroll offset steps.
func (g *Grid) handleWheel(input *InputState) {
	if input.MouseWheelX == 0 && input.MouseWheelY == 0 {
		return
	}
	nx := clampi(g.scroll.X-int(input.MouseWheelX), 0, 1<<30)
	ny := clampi(g.scroll.Y-int(input.MouseWheelY), 0, 1<<30)
	if nx == g.scroll.X && ny == g.scroll.Y {
		return
	}
	g.scroll.X, g.scroll.Y = nx, ny
	g.markViewDirty()
	if g.onScroll != nil {
		g.onScroll(float32(g.scroll.X)*g.scrollStep, float32(g.scroll.Y)*g.scrollStep)
	}
}

func (g *Grid) handlePointer(input *InputState) {
	p := Vec2{X: input.MouseX, Y: input.MouseY}

	if input.MouseClicked(MouseButtonLeft) {
		g.pointerDown(p, input.ModShift)
	}
	if input.MouseDown(MouseButtonLeft) && !input.MouseClicked(MouseButtonLeft) {
		g.pointerMove(p)
	}
	if input.MouseReleased(MouseButtonLeft) {
		g.pointerUp(p)
	}
}

// pointerDown dispatches a press: hit targets first, then resize
// boundaries, then the fill handle, then header bands, then cell bodies.
func (g *Grid) pointerDown(p Vec2, shift bool) {
	// Interactive cell content short-circuits normal selection. The target
	// is armed here and only fires if the release lands on it too.
	if t := g.hits.Lookup(p); t != nil {
		g.armed = t
		return
	}

	if g.state != StateIdle {
		return
	}

	// Navigation away from an open editor commits it first.
	if g.edit.Active() {
		g.commitEdit(0, 0)
	}

	if idx, ok := g.columnBoundaryAt(p); ok {
		g.resizeCtx = resizeContext{axisStart: p.X, original: g.colSizes.Size(idx), index: idx}
		g.setState(StateResizingColumn)
		return
	}
	if idx, ok := g.rowBoundaryAt(p); ok {
		g.resizeCtx = resizeContext{axisStart: p.Y, original: g.rowSizes.Size(idx), index: idx}
		g.setState(StateResizingRow)
		return
	}

	if knob, ok := g.FillHandleRect(); ok && knob.Contains(p) {
		g.fill = fillDrag{fixed: g.sel.Rect().Normalized()}
		g.setState(StateDraggingFillHandle)
		return
	}

	cols, rows := g.data.Dims()
	inColHeader := p.Y < g.headerH
	inRowHeader := p.X < g.headerW

	switch {
	case inColHeader && inRowHeader:
		g.SelectAll()

	case inColHeader:
		if x := g.view.Cols.CellAt(p.X); x != NoCell {
			// Whole-column selection: the active row is the far sentinel.
			g.setSelection(x, 0, x, rows-1)
			g.setState(StateSelectingColumn)
		}

	case inRowHeader:
		if y := g.view.Rows.CellAt(p.Y); y != NoCell {
			g.setSelection(0, y, cols-1, y)
			g.setState(StateSelectingRow)
		}

	default:
		x, y := g.view.CellAt(p)
		if x == NoCell || y == NoCell {
			return
		}
		if g.lastClickAt >= 0 && g.clock-g.lastClickAt <= g.doubleClickTime &&
			x == g.lastClickX && y == g.lastClickY {
			seed, _ := g.data.EditValue(x, y)
			g.startEdit(x, y, seed, false)
			g.lastClickAt = -1
			return
		}
		g.lastClickAt = g.clock
		g.lastClickX, g.lastClickY = x, y

		if shift && g.sel.Valid() {
			g.setSelection(g.sel.AnchorX, g.sel.AnchorY, x, y)
		} else {
			g.setSelection(x, y, x, y)
		}
		g.scrollFollow()
		g.setState(StateSelectingByDrag)
	}
}

// pointerMove advances whichever drag interaction is active. Selection
// states only change the axis they allow; a pointer outside the resolvable
// area keeps the previous active cell.
func (g *Grid) pointerMove(p Vec2) {
	switch g.state {
	case StateSelectingByDrag:
		x, y := g.view.CellAt(p)
		nx, ny := g.sel.ActiveX, g.sel.ActiveY
		if x != NoCell {
			nx = x
		}
		if y != NoCell {
			ny = y
		}
		g.setSelection(g.sel.AnchorX, g.sel.AnchorY, nx, ny)
		g.scrollFollow()

	case StateSelectingRow:
		if y := g.view.Rows.CellAt(p.Y); y != NoCell {
			g.setSelection(g.sel.AnchorX, g.sel.AnchorY, g.sel.ActiveX, y)
		}

	case StateSelectingColumn:
		if x := g.view.Cols.CellAt(p.X); x != NoCell {
			g.setSelection(g.sel.AnchorX, g.sel.AnchorY, x, g.sel.ActiveY)
		}

	case StateResizingColumn, StateResizingRow:
		g.trackResize(p)

	case StateDraggingFillHandle:
		x, y := g.view.CellAt(p)
		g.fill.updateFillExtension(x, y)
	}
}

// pointerUp commits the interaction in progress and returns to Idle. An
// armed hit target fires only when the release still lands on it.
func (g *Grid) pointerUp(p Vec2) {
	if g.armed != nil {
		armed := g.armed
		g.armed = nil
		// Re-resolve against the current index: a rebuild between press and
		// release replaces the target instances.
		cur := g.hits.Lookup(p)
		if cur != nil && cur.CellX == armed.CellX && cur.CellY == armed.CellY &&
			cur.Rect == armed.Rect && cur.OnClick != nil {
			cur.OnClick()
		}
		return
	}

	switch g.state {
	case StateDraggingFillHandle:
		g.applyFill()
	case StateResizingColumn, StateResizingRow:
		g.resizeCtx = resizeContext{}
	}
	if g.state != StateIdle {
		g.setState(StateIdle)
	}
}

// emitChanges filters writes to read-only or out-of-range cells silently
// and forwards the rest to the change handler in order.
func (g *Grid) emitChanges(changes []CellChange) {
	cols, rows := g.data.Dims()
	kept := make([]CellChange, 0, len(changes))
	for _, c := range changes {
		if c.X < 0 || c.Y < 0 || c.X >= cols || c.Y >= rows {
			continue
		}
		if g.data.ReadOnly(c.X, c.Y) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 || g.onChange == nil {
		return
	}
	g.onChange(kept)
	g.MarkContentDirty()
}

// Selection returns the current selection, normalized. ok is false before
// the first interaction selects anything.
func (g *Grid) Selection() (CellRect, bool) {
	if !g.sel.Valid() {
		return CellRect{}, false
	}
	return g.sel.Rect().Normalized(), true
}

// Editing returns the cell under edit and its in-progress buffer.
func (g *Grid) Editing() (x, y int, text string, ok bool) {
	if !g.edit.Active() {
		return NoCell, NoCell, "", false
	}
	return g.edit.X, g.edit.Y, g.edit.Text, true
}

// ScrollOffset returns the whole-cell scroll offset.
func (g *Grid) ScrollOffset() ScrollOffset { return g.scroll }

// SetScrollOffset lets the host scrollbar drive the engine. Negative
// offsets clamp to zero.
func (g *Grid) SetScrollOffset(x, y int) {
	x, y = max(x, 0), max(y, 0)
	if x == g.scroll.X && y == g.scroll.Y {
		return
	}
	g.scroll = ScrollOffset{X: x, Y: y}
	g.markViewDirty()
}

// State returns the current interaction state.
func (g *Grid) State() InteractionState { return g.state }

// View returns the current viewport windows. The result is a cache owned
// by the engine; it is valid until the next Revalidate.
func (g *Grid) View() *Viewport { return &g.view }

// SelectAll selects the whole data extent.
func (g *Grid) SelectAll() {
	cols, rows := g.data.Dims()
	if cols > 0 && rows > 0 {
		g.setSelection(0, 0, cols-1, rows-1)
	}
}

// CopyText serializes the current selection as delimited text: cells
// joined by tabs, rows by newlines, absent values as empty strings.
func (g *Grid) CopyText() string {
	if !g.sel.Valid() {
		return ""
	}
	return serializeRange(g.data, g.sel.Rect())
}

// Copy places the serialized selection on the configured clipboard.
func (g *Grid) Copy() {
	if g.sel.Valid() {
		ClipboardSetText(g.CopyText())
	}
}

// Cut copies the selection and then deletes it.
func (g *Grid) Cut() {
	if !g.sel.Valid() {
		return
	}
	ClipboardSetText(g.CopyText())
	g.DeleteSelection()
}

// DeleteSelection emits one deletion change per cell of the normalized
// selection.
func (g *Grid) DeleteSelection() {
	if !g.sel.Valid() {
		return
	}
	n := g.sel.Rect().Normalized()
	changes := make([]CellChange, 0, n.Cols()*n.Rows())
	for y := n.Y1; y <= n.Y2; y++ {
		for x := n.X1; x <= n.X2; x++ {
			changes = append(changes, NewCellDelete(x, y))
		}
	}
	g.emitChanges(changes)
}

// Paste imports the clipboard: payloads containing a table fragment take
// the HTML path, everything else the delimited-text path.
func (g *Grid) Paste() {
	text := ClipboardGetText()
	if strings.Contains(strings.ToLower(text), "<table") {
		g.PasteHTML(text)
		return
	}
	g.PasteText(text)
}

// PasteText imports delimited text anchored at the top-left of the current
// selection. With no selection there is no anchor and the paste is dropped
// silently; that is policy, not an error. The final selection spans the
// pasted extent.
func (g *Grid) PasteText(text string) {
	if !g.sel.Valid() {
		return
	}
	rows := parseDelimited(text)
	if len(rows) == 0 {
		return
	}
	g.pasteRows(rows)
}

// PasteHTML imports the first table found in an HTML payload, using each
// cell's inner text as the value. No table structure means no-op. Spans are
// ignored by design.
func (g *Grid) PasteHTML(payload string) {
	if !g.sel.Valid() {
		return
	}
	rows, ok := parseHTMLTable(payload)
	if !ok {
		return
	}
	g.pasteRows(rows)
}

func (g *Grid) pasteRows(rows [][]string) {
	n := g.sel.Rect().Normalized()
	changes, extent := changesForPaste(rows, n.X1, n.Y1)
	g.emitChanges(changes)
	g.setSelection(extent.X1, extent.Y1, extent.X2, extent.Y2)
}

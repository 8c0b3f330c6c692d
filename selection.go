package grid

// InteractionState identifies which pointer interaction, if any, is in
// progress. States are mutually exclusive; entering one is gated on being
// Idle. Cell editing is tracked separately (EditState) because it coexists
// with idle navigation that first commits the edit.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StateSelectingByDrag
	StateSelectingRow
	StateSelectingColumn
	StateResizingColumn
	StateResizingRow
	StateDraggingFillHandle
)

// String returns the state name for debug logging.
func (s InteractionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingByDrag:
		return "selecting-drag"
	case StateSelectingRow:
		return "selecting-row"
	case StateSelectingColumn:
		return "selecting-column"
	case StateResizingColumn:
		return "resizing-column"
	case StateResizingRow:
		return "resizing-row"
	case StateDraggingFillHandle:
		return "dragging-fill"
	}
	return "?"
}

// Selection holds the anchor and active corners of the current selection.
// The corners are stored as-is: the anchor stays fixed during
// shift-extension while the active corner moves, so either coordinate pair
// may be "inverted". Normalization happens at consumption time.
type Selection struct {
	AnchorX, AnchorY int
	ActiveX, ActiveY int
}

// Valid reports whether any cell is selected.
func (s Selection) Valid() bool {
	return s.AnchorX >= 0 && s.AnchorY >= 0 && s.ActiveX >= 0 && s.ActiveY >= 0
}

// Rect returns the selection as an unnormalized cell rectangle with the
// anchor at (X1, Y1) and the active corner at (X2, Y2).
func (s Selection) Rect() CellRect {
	return CellRect{X1: s.AnchorX, Y1: s.AnchorY, X2: s.ActiveX, Y2: s.ActiveY}
}

// noSelection is the zero anchor state before any pointer or keyboard
// interaction has happened.
var noSelection = Selection{AnchorX: -1, AnchorY: -1, ActiveX: -1, ActiveY: -1}

// EditState tracks the cell under edit and its in-progress buffer.
// X = Y = -1 is the "not editing" sentinel.
type EditState struct {
	X, Y int
	Text string

	// arrowCommit is set when editing was started by typing a character
	// (rather than a double click): arrow keys then commit the buffer and
	// move, instead of moving the caret inside the editor.
	arrowCommit bool
}

// Active reports whether a cell is being edited.
func (e EditState) Active() bool { return e.X >= 0 && e.Y >= 0 }

var noEdit = EditState{X: -1, Y: -1}

// ScrollOffset counts how many leading non-frozen cells are scrolled past
// on each axis. Granularity is whole cells, never pixels.
type ScrollOffset struct {
	X, Y int
}

// setState transitions the interaction state machine, tracing at debug level.
func (g *Grid) setState(next InteractionState) {
	if g.state == next {
		return
	}
	stateLogger.Debug("state transition", "from", g.state.String(), "to", next.String())
	g.state = next
}

// setSelection replaces both corners and notifies the host with the
// normalized rectangle.
func (g *Grid) setSelection(anchorX, anchorY, activeX, activeY int) {
	next := Selection{AnchorX: anchorX, AnchorY: anchorY, ActiveX: activeX, ActiveY: activeY}
	if next == g.sel {
		return
	}
	g.sel = next
	if g.onSelectionChanged != nil && next.Valid() {
		n := next.Rect().Normalized()
		g.onSelectionChanged(n.X1, n.Y1, n.X2, n.Y2)
	}
}

// moveActive moves the active corner by (dx, dy), clamped to the data
// dimensions. When extend is false the anchor snaps to the active cell.
// Out-of-range movement clamps instead of erroring.
func (g *Grid) moveActive(dx, dy int, extend bool) {
	if !g.sel.Valid() {
		// Nothing selected yet: the first keyboard move lands on the origin.
		g.setSelection(0, 0, 0, 0)
		g.scrollFollow()
		return
	}

	cols, rows := g.data.Dims()
	x := clampi(g.sel.ActiveX+dx, 0, cols-1)
	y := clampi(g.sel.ActiveY+dy, 0, rows-1)

	if extend {
		g.setSelection(g.sel.AnchorX, g.sel.AnchorY, x, y)
	} else {
		g.setSelection(x, y, x, y)
	}
	g.scrollFollow()
}

// scrollFollow advances the scroll offset by exactly one cell per call when
// the active corner is not fully visible, then asks the host to set its
// scroll position to offset * scroll step. The step is a fixed
// pixel-per-cell constant decoupled from actual cell sizes; the window
// recompute on the next frame corrects any over/undershoot.
func (g *Grid) scrollFollow() {
	if !g.sel.Valid() {
		return
	}

	moved := false
	x, y := g.sel.ActiveX, g.sel.ActiveY

	if x >= g.frozenCols && !g.view.Cols.FullyVisible(x, g.viewSize.X) {
		if x < g.scroll.X {
			g.scroll.X--
		} else {
			g.scroll.X++
		}
		moved = true
	}
	if y >= g.frozenRows && !g.view.Rows.FullyVisible(y, g.viewSize.Y) {
		if y < g.scroll.Y {
			g.scroll.Y--
		} else {
			g.scroll.Y++
		}
		moved = true
	}

	if moved {
		g.markViewDirty()
		if g.onScroll != nil {
			g.onScroll(float32(g.scroll.X)*g.scrollStep, float32(g.scroll.Y)*g.scrollStep)
		}
	}
}

// pageRows is the keyboard paging stride: the scrolled rows of the current
// window, at least one.
func (g *Grid) pageRows() int {
	n := g.view.Rows.Len() - g.frozenRows
	if n < 1 {
		n = 1
	}
	return n
}

// startEdit transitions into cell editing. Read-only cells reject the
// transition silently; navigation state is untouched.
func (g *Grid) startEdit(x, y int, seed string, arrowCommit bool) {
	if g.state != StateIdle {
		return
	}
	cols, rows := g.data.Dims()
	if x < 0 || y < 0 || x >= cols || y >= rows || g.data.ReadOnly(x, y) {
		return
	}
	g.edit = EditState{X: x, Y: y, Text: seed, arrowCommit: arrowCommit}
	stateLogger.Debug("edit started", "x", x, "y", y, "arrowCommit", arrowCommit)
}

// cancelEdit discards the buffer without emitting a change.
func (g *Grid) cancelEdit() {
	g.edit = noEdit
}

// commitEdit emits the buffer as a single-cell change, clears the edit
// state, and moves the selection by (dx, dy). Writes to read-only or
// out-of-range cells are dropped silently; the navigation still happens.
func (g *Grid) commitEdit(dx, dy int) {
	if !g.edit.Active() {
		return
	}
	change := NewCellChange(g.edit.X, g.edit.Y, g.edit.Text)
	g.edit = noEdit
	g.emitChanges([]CellChange{change})
	if dx != 0 || dy != 0 {
		g.moveActive(dx, dy, false)
	}
}

// handleKeyboard consumes this frame's keyboard input. Editing takes
// priority; otherwise keys drive navigation, clipboard shortcuts, deletion
// and edit entry.
func (g *Grid) handleKeyboard(input *InputState) {
	if g.edit.Active() {
		g.handleEditingKeys(input)
		return
	}

	if input.ModCtrl || input.ModSuper {
		switch {
		case input.KeyPressed(KeyC):
			g.Copy()
		case input.KeyPressed(KeyX):
			g.Cut()
		case input.KeyPressed(KeyV):
			g.Paste()
		case input.KeyPressed(KeyA):
			g.SelectAll()
		}
		input.ConsumeInputChars()
		return
	}

	extend := input.ModShift
	switch {
	case input.KeyRepeated(KeyLeft):
		g.moveActive(-1, 0, extend)
	case input.KeyRepeated(KeyRight):
		g.moveActive(1, 0, extend)
	case input.KeyRepeated(KeyUp):
		g.moveActive(0, -1, extend)
	case input.KeyRepeated(KeyDown):
		g.moveActive(0, 1, extend)
	case input.KeyRepeated(KeyPageUp):
		g.moveActive(0, -g.pageRows(), extend)
	case input.KeyRepeated(KeyPageDown):
		g.moveActive(0, g.pageRows(), extend)
	case input.KeyPressed(KeyHome):
		g.moveActive(-g.sel.ActiveX, 0, extend)
	case input.KeyPressed(KeyEnd):
		cols, _ := g.data.Dims()
		g.moveActive(cols-1-g.sel.ActiveX, 0, extend)
	case input.KeyPressed(KeyEnter):
		g.moveActive(0, 1, false)
	case input.KeyPressed(KeyTab):
		g.moveActive(1, 0, false)
	case input.KeyPressed(KeyDelete), input.KeyPressed(KeyBackspace):
		g.DeleteSelection()
	}

	// A printable character starts editing with the typed text as the
	// buffer, in arrow-commit mode.
	if input.HasInputChars() && g.sel.Valid() {
		g.startEdit(g.sel.ActiveX, g.sel.ActiveY, string(input.InputChars), true)
		input.ConsumeInputChars()
	}
}

// handleEditingKeys drives the edit buffer lifecycle.
func (g *Grid) handleEditingKeys(input *InputState) {
	switch {
	case input.KeyPressed(KeyEscape):
		g.cancelEdit()
		return
	case input.KeyPressed(KeyEnter):
		g.commitEdit(0, 1)
		return
	case input.KeyPressed(KeyTab):
		g.commitEdit(1, 0)
		return
	}

	if g.edit.arrowCommit {
		switch {
		case input.KeyRepeated(KeyLeft):
			g.commitEdit(-1, 0)
			return
		case input.KeyRepeated(KeyRight):
			g.commitEdit(1, 0)
			return
		case input.KeyRepeated(KeyUp):
			g.commitEdit(0, -1)
			return
		case input.KeyRepeated(KeyDown):
			g.commitEdit(0, 1)
			return
		}
	}

	if input.KeyRepeated(KeyBackspace) && len(g.edit.Text) > 0 {
		runes := []rune(g.edit.Text)
		g.edit.Text = string(runes[:len(runes)-1])
	}
	if input.HasInputChars() {
		g.edit.Text += string(input.InputChars)
		input.ConsumeInputChars()
	}
}

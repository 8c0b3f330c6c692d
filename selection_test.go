package grid

import "testing"

// testSheet is an in-memory DataSource shared by the engine tests.
// Geometry in these tests uses the engine defaults: 60px row header, 25px
// column header, 100x25 cells.
type testSheet struct {
	cols, rows int
	cells      map[[2]int]string
	readOnly   map[[2]int]bool
	targets    map[[2]int][]TargetSpec
}

func newTestSheet(cols, rows int) *testSheet {
	return &testSheet{
		cols:     cols,
		rows:     rows,
		cells:    make(map[[2]int]string),
		readOnly: make(map[[2]int]bool),
		targets:  make(map[[2]int][]TargetSpec),
	}
}

func (s *testSheet) Dims() (int, int) { return s.cols, s.rows }

func (s *testSheet) Value(x, y int) (string, bool) {
	v, ok := s.cells[[2]int{x, y}]
	return v, ok
}

func (s *testSheet) DisplayValue(x, y int) (string, bool) { return s.Value(x, y) }
func (s *testSheet) EditValue(x, y int) (string, bool)    { return s.Value(x, y) }
func (s *testSheet) ReadOnly(x, y int) bool               { return s.readOnly[[2]int{x, y}] }

func (s *testSheet) CellTargets(x, y int) []TargetSpec { return s.targets[[2]int{x, y}] }

func (s *testSheet) apply(changes []CellChange) {
	for _, c := range changes {
		if c.Value == nil {
			delete(s.cells, [2]int{c.X, c.Y})
		} else {
			s.cells[[2]int{c.X, c.Y}] = *c.Value
		}
	}
}

var testViewSize = Vec2{X: 700, Y: 400}

// stepFrame runs one engine frame with scripted input.
func stepFrame(g *Grid, input *InputState, fill func(*InputState)) {
	input.Reset()
	if fill != nil {
		fill(input)
	}
	g.Frame(input, testViewSize, 1.0/60.0)
}

// cellCenter returns the pixel center of a cell under default geometry with
// no scrolling.
func cellCenter(x, y int) Vec2 {
	return Vec2{
		X: 60 + float32(x)*100 + 50,
		Y: 25 + float32(y)*25 + 12,
	}
}

func clickCell(g *Grid, input *InputState, x, y int) {
	p := cellCenter(x, y)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(p.X, p.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})
	stepFrame(g, input, func(in *InputState) {
		in.SetMouseButton(MouseButtonLeft, false)
	})
}

func pressKey(g *Grid, input *InputState, key Key, shift bool) {
	stepFrame(g, input, func(in *InputState) {
		in.ModShift = shift
		in.SetKey(key, true)
	})
	stepFrame(g, input, func(in *InputState) {
		in.ModShift = shift
		in.SetKey(key, false)
	})
}

func TestClickSelectsCell(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	p := cellCenter(1, 1)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(p.X, p.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	sel, ok := g.Selection()
	if !ok || sel != (CellRect{X1: 1, Y1: 1, X2: 1, Y2: 1}) {
		t.Errorf("Expected selection (1,1)-(1,1), got %+v ok=%v", sel, ok)
	}
	if g.State() != StateSelectingByDrag {
		t.Errorf("Expected drag-select state while button held, got %v", g.State())
	}

	stepFrame(g, input, func(in *InputState) {
		in.SetMouseButton(MouseButtonLeft, false)
	})
	if g.State() != StateIdle {
		t.Errorf("Expected idle after release, got %v", g.State())
	}
}

func TestDragExtendsSelection(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	start := cellCenter(1, 0)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(start.X, start.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	// Button stays held; only the position changes.
	end := cellCenter(3, 2)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(end.X, end.Y)
	})

	sel, _ := g.Selection()
	if sel != (CellRect{X1: 1, Y1: 0, X2: 3, Y2: 2}) {
		t.Errorf("Expected selection (1,0)-(3,2), got %+v", sel)
	}

	// Dragging back past the anchor inverts the stored corners but the
	// reported selection stays normalized.
	back := cellCenter(0, 0)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(back.X, back.Y)
	})
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 0, Y1: 0, X2: 1, Y2: 0}) {
		t.Errorf("Expected normalized selection (0,0)-(1,0), got %+v", sel)
	}
}

func TestDragOutsideGridKeepsLastCell(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	start := cellCenter(2, 2)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(start.X, start.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	// Into the header bands: neither axis resolves, selection is unchanged.
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(10, 10)
	})
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 2, Y1: 2, X2: 2, Y2: 2}) {
		t.Errorf("Expected selection to survive off-grid drag, got %+v", sel)
	}
}

func TestShiftClickExtendsFromAnchor(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	clickCell(g, input, 1, 1)

	p := cellCenter(3, 4)
	stepFrame(g, input, func(in *InputState) {
		in.ModShift = true
		in.SetMousePos(p.X, p.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	sel, _ := g.Selection()
	if sel != (CellRect{X1: 1, Y1: 1, X2: 3, Y2: 4}) {
		t.Errorf("Expected shift-click extension (1,1)-(3,4), got %+v", sel)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	// First move with nothing selected lands on the origin.
	pressKey(g, input, KeyDown, false)
	sel, ok := g.Selection()
	if !ok || sel != (CellRect{X1: 0, Y1: 0, X2: 0, Y2: 0}) {
		t.Fatalf("Expected first move to land on (0,0), got %+v", sel)
	}

	pressKey(g, input, KeyRight, false)
	pressKey(g, input, KeyDown, false)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 1, Y1: 1, X2: 1, Y2: 1}) {
		t.Errorf("Expected (1,1) after right+down, got %+v", sel)
	}

	// Shift extends: the anchor stays, the active corner moves.
	pressKey(g, input, KeyDown, true)
	pressKey(g, input, KeyRight, true)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 1, Y1: 1, X2: 2, Y2: 2}) {
		t.Errorf("Expected extension to (1,1)-(2,2), got %+v", sel)
	}

	// An unshifted move collapses back to a single cell.
	pressKey(g, input, KeyUp, false)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 2, Y1: 1, X2: 2, Y2: 1}) {
		t.Errorf("Expected collapse to (2,1), got %+v", sel)
	}
}

func TestKeyboardNavigationClampsAtEdges(t *testing.T) {
	sheet := newTestSheet(3, 3)
	g := New(sheet)
	input := NewInputState()

	pressKey(g, input, KeyDown, false) // (0,0)
	pressKey(g, input, KeyLeft, false)
	pressKey(g, input, KeyUp, false)
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 0, Y1: 0, X2: 0, Y2: 0}) {
		t.Errorf("Expected clamp at origin, got %+v", sel)
	}

	for i := 0; i < 10; i++ {
		pressKey(g, input, KeyRight, false)
	}
	sel, _ = g.Selection()
	if sel.X2 != 2 {
		t.Errorf("Expected clamp at last column 2, got %+v", sel)
	}
}

func TestEnterAndTabMove(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	clickCell(g, input, 2, 2)
	pressKey(g, input, KeyEnter, false)
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 2, Y1: 3, X2: 2, Y2: 3}) {
		t.Errorf("Expected Enter to move down to (2,3), got %+v", sel)
	}

	pressKey(g, input, KeyTab, false)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 3, Y1: 3, X2: 3, Y2: 3}) {
		t.Errorf("Expected Tab to move right to (3,3), got %+v", sel)
	}
}

func TestTypingStartsEditAndEnterCommits(t *testing.T) {
	sheet := newTestSheet(8, 20)
	var got []CellChange
	g := New(sheet, WithChangeHandler(func(c []CellChange) {
		got = append(got, c...)
		sheet.apply(c)
	}))
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) {
		in.AddInputChar('h')
		in.AddInputChar('i')
	})

	x, y, text, ok := g.Editing()
	if !ok || x != 1 || y != 1 || text != "hi" {
		t.Fatalf("Expected editing (1,1) with \"hi\", got (%d,%d,%q,%v)", x, y, text, ok)
	}

	pressKey(g, input, KeyEnter, false)
	if _, _, _, ok := g.Editing(); ok {
		t.Error("Expected edit to end on Enter")
	}
	if len(got) != 1 || got[0].X != 1 || got[0].Y != 1 || got[0].Value == nil || *got[0].Value != "hi" {
		t.Fatalf("Expected one change (1,1)=\"hi\", got %+v", got)
	}
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 1, Y1: 2, X2: 1, Y2: 2}) {
		t.Errorf("Expected commit to move down to (1,2), got %+v", sel)
	}
}

func TestEscapeCancelsEdit(t *testing.T) {
	sheet := newTestSheet(8, 20)
	var got []CellChange
	g := New(sheet, WithChangeHandler(func(c []CellChange) { got = append(got, c...) }))
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) { in.AddInputChar('x') })
	pressKey(g, input, KeyEscape, false)

	if _, _, _, ok := g.Editing(); ok {
		t.Error("Expected edit cancelled on Escape")
	}
	if len(got) != 0 {
		t.Errorf("Expected no changes after cancel, got %+v", got)
	}
}

func TestArrowCommitsTypedEdit(t *testing.T) {
	sheet := newTestSheet(8, 20)
	var got []CellChange
	g := New(sheet, WithChangeHandler(func(c []CellChange) { got = append(got, c...) }))
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) { in.AddInputChar('5') })
	pressKey(g, input, KeyRight, false)

	if _, _, _, ok := g.Editing(); ok {
		t.Error("Expected arrow to commit a typed edit")
	}
	if len(got) != 1 || *got[0].Value != "5" {
		t.Fatalf("Expected one change \"5\", got %+v", got)
	}
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 2, Y1: 1, X2: 2, Y2: 1}) {
		t.Errorf("Expected move right to (2,1) after commit, got %+v", sel)
	}
}

func TestEditBufferBackspace(t *testing.T) {
	sheet := newTestSheet(8, 20)
	g := New(sheet)
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) {
		in.AddInputChar('a')
		in.AddInputChar('b')
	})
	pressKey(g, input, KeyBackspace, false)

	_, _, text, ok := g.Editing()
	if !ok || text != "a" {
		t.Errorf("Expected buffer \"a\" after backspace, got %q ok=%v", text, ok)
	}
}

func TestReadOnlyCellRejectsEdit(t *testing.T) {
	sheet := newTestSheet(8, 20)
	sheet.readOnly[[2]int{1, 1}] = true
	g := New(sheet)
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) { in.AddInputChar('x') })

	if _, _, _, ok := g.Editing(); ok {
		t.Error("Expected read-only cell to reject edit entry")
	}
	// Navigation is untouched.
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 1, Y1: 1, X2: 1, Y2: 1}) {
		t.Errorf("Expected selection to stay on (1,1), got %+v", sel)
	}
}

func TestPointerDownCommitsOpenEdit(t *testing.T) {
	sheet := newTestSheet(8, 20)
	var got []CellChange
	g := New(sheet, WithChangeHandler(func(c []CellChange) { got = append(got, c...) }))
	input := NewInputState()

	clickCell(g, input, 1, 1)
	stepFrame(g, input, func(in *InputState) { in.AddInputChar('z') })
	clickCell(g, input, 4, 4)

	if len(got) != 1 || *got[0].Value != "z" {
		t.Fatalf("Expected the open edit committed on click-away, got %+v", got)
	}
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 4, Y1: 4, X2: 4, Y2: 4}) {
		t.Errorf("Expected selection to follow the click to (4,4), got %+v", sel)
	}
}

func TestDeleteKeyEmitsDeletions(t *testing.T) {
	sheet := newTestSheet(8, 20)
	var got []CellChange
	g := New(sheet, WithChangeHandler(func(c []CellChange) { got = append(got, c...) }))
	input := NewInputState()

	start := cellCenter(1, 1)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(start.X, start.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})
	end := cellCenter(2, 2)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(end.X, end.Y)
	})
	stepFrame(g, input, func(in *InputState) {
		in.SetMouseButton(MouseButtonLeft, false)
	})

	pressKey(g, input, KeyDelete, false)
	if len(got) != 4 {
		t.Fatalf("Expected 4 deletions for a 2x2 selection, got %d", len(got))
	}
	for _, c := range got {
		if c.Value != nil {
			t.Errorf("Expected deletion (nil value) at (%d,%d)", c.X, c.Y)
		}
	}
}

func TestScrollFollowStepsOneCell(t *testing.T) {
	sheet := newTestSheet(8, 50)
	var scrollX, scrollY float32
	g := New(sheet, WithScrollHandler(func(x, y float32) { scrollX, scrollY = x, y }))
	input := NewInputState()

	// Row 14 is the last fully visible row in a 400px viewport.
	clickCell(g, input, 0, 14)
	pressKey(g, input, KeyDown, false)

	if off := g.ScrollOffset(); off.Y != 1 {
		t.Fatalf("Expected scroll offset 1 after moving below the fold, got %d", off.Y)
	}
	if scrollY != DefaultScrollStep || scrollX != 0 {
		t.Errorf("Expected host scroll request (0,%f), got (%f,%f)", DefaultScrollStep, scrollX, scrollY)
	}

	pressKey(g, input, KeyDown, false)
	if off := g.ScrollOffset(); off.Y != 2 {
		t.Errorf("Expected one more scroll step, got %d", off.Y)
	}

	// Moving back up inside the window does not scroll.
	pressKey(g, input, KeyUp, false)
	if off := g.ScrollOffset(); off.Y != 2 {
		t.Errorf("Expected scroll offset unchanged on in-window move, got %d", off.Y)
	}
}

func TestPageAndHomeEndNavigation(t *testing.T) {
	sheet := newTestSheet(8, 50)
	g := New(sheet)
	input := NewInputState()

	clickCell(g, input, 0, 0)

	// The 400px viewport lists 15 rows; a page moves by that many.
	pressKey(g, input, KeyPageDown, false)
	sel, _ := g.Selection()
	if sel != (CellRect{X1: 0, Y1: 15, X2: 0, Y2: 15}) {
		t.Fatalf("Expected page down to land on (0,15), got %+v", sel)
	}

	pressKey(g, input, KeyPageUp, false)
	sel, _ = g.Selection()
	if sel.Y2 != 0 {
		t.Errorf("Expected page up back to row 0, got %+v", sel)
	}

	pressKey(g, input, KeyEnd, false)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 7, Y1: 0, X2: 7, Y2: 0}) {
		t.Errorf("Expected End to land on the last column, got %+v", sel)
	}

	// Shift+Home extends from the current anchor to column 0.
	pressKey(g, input, KeyHome, true)
	sel, _ = g.Selection()
	if sel != (CellRect{X1: 0, Y1: 0, X2: 7, Y2: 0}) {
		t.Errorf("Expected shift+Home to span the row, got %+v", sel)
	}
}

func TestClickOnPartiallyVisibleCellScrolls(t *testing.T) {
	sheet := newTestSheet(20, 50)
	var scrollX float32
	g := New(sheet, WithScrollHandler(func(x, y float32) { scrollX = x }))
	input := NewInputState()

	// Column 6 spans x 660..760 and overflows the 700px viewport.
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(690, 40)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	sel, _ := g.Selection()
	if sel != (CellRect{X1: 6, Y1: 0, X2: 6, Y2: 0}) {
		t.Fatalf("Expected tail cell (6,0) selected, got %+v", sel)
	}
	if off := g.ScrollOffset(); off.X != 1 {
		t.Errorf("Expected one scroll step toward the tail cell, got %d", off.X)
	}
	if scrollX != DefaultScrollStep {
		t.Errorf("Expected host scroll request %f, got %f", DefaultScrollStep, scrollX)
	}
}

func TestDragToViewportEdgeScrolls(t *testing.T) {
	sheet := newTestSheet(20, 50)
	g := New(sheet)
	input := NewInputState()

	start := cellCenter(1, 1)
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(start.X, start.Y)
		in.SetMouseButton(MouseButtonLeft, true)
	})

	// Drag onto the partially visible tail column: one scroll step per
	// frame while the pointer sits on it.
	stepFrame(g, input, func(in *InputState) {
		in.SetMousePos(690, start.Y)
	})
	if off := g.ScrollOffset(); off.X != 1 {
		t.Fatalf("Expected scroll offset 1 after dragging to the edge, got %d", off.X)
	}
	stepFrame(g, input, nil)
	if off := g.ScrollOffset(); off.X != 2 {
		t.Errorf("Expected another step while the pointer holds the edge, got %d", off.X)
	}

	// The anchor is untouched by edge scrolling.
	sel, _ := g.Selection()
	if sel.X1 != 1 || sel.Y1 != 1 {
		t.Errorf("Expected anchor to stay at (1,1), got %+v", sel)
	}
}

func TestFrozenCellNeverTriggersScrollFollow(t *testing.T) {
	sheet := newTestSheet(8, 50)
	g := New(sheet, WithFrozen(1, 1))
	input := NewInputState()

	clickCell(g, input, 0, 0)
	pressKey(g, input, KeyUp, false)
	pressKey(g, input, KeyLeft, false)

	if off := g.ScrollOffset(); off.X != 0 || off.Y != 0 {
		t.Errorf("Expected no scroll for a frozen active cell, got %+v", off)
	}
}

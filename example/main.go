// Example drives the grid interaction engine headlessly: an in-memory
// sheet, scripted pointer and keyboard frames, and printed change batches.
// It shows the full wiring a real host needs (DataSource, change handler,
// clipboard provider) without opening a window.
//
// For a windowed host, pair the engine with backend/glfwhost:
//
//	adapter := glfwhost.NewInputAdapter(window)
//	grid.SetClipboardProvider(glfwhost.NewClipboard(window))
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    g.Frame(adapter.Update(), viewSize, dt)
//	}
package main

import (
	"fmt"
	"os"

	"github.com/go-theft-auto/grid"
)

const (
	sheetCols = 8
	sheetRows = 20
)

// sheet is a minimal in-memory DataSource.
type sheet struct {
	cells map[[2]int]string
}

func newSheet() *sheet {
	return &sheet{cells: make(map[[2]int]string)}
}

func (s *sheet) Dims() (int, int) { return sheetCols, sheetRows }

func (s *sheet) Value(x, y int) (string, bool) {
	v, ok := s.cells[[2]int{x, y}]
	return v, ok
}

func (s *sheet) DisplayValue(x, y int) (string, bool) { return s.Value(x, y) }
func (s *sheet) EditValue(x, y int) (string, bool)    { return s.Value(x, y) }

// First row is a locked header row.
func (s *sheet) ReadOnly(x, y int) bool { return y == 0 }

func (s *sheet) apply(changes []grid.CellChange) {
	for _, c := range changes {
		if c.Value == nil {
			delete(s.cells, [2]int{c.X, c.Y})
			continue
		}
		s.cells[[2]int{c.X, c.Y}] = *c.Value
	}
}

// memClipboard keeps clipboard traffic inside the process.
type memClipboard struct {
	text string
}

func (c *memClipboard) GetText() string     { return c.text }
func (c *memClipboard) SetText(text string) { c.text = text }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	grid.SetVerbose(true)
	grid.SetClipboardProvider(&memClipboard{})

	data := newSheet()
	data.cells[[2]int{1, 1}] = "10"
	data.cells[[2]int{1, 2}] = "20"

	g := grid.New(data,
		grid.WithFrozen(1, 1),
		grid.WithChangeHandler(func(changes []grid.CellChange) {
			data.apply(changes)
			for _, c := range changes {
				if c.Value == nil {
					fmt.Printf("change: (%d,%d) deleted\n", c.X, c.Y)
				} else {
					fmt.Printf("change: (%d,%d) = %q\n", c.X, c.Y, *c.Value)
				}
			}
		}),
		grid.WithSelectionHandler(func(x1, y1, x2, y2 int) {
			fmt.Printf("selection: (%d,%d)-(%d,%d)\n", x1, y1, x2, y2)
		}),
		grid.WithScrollHandler(func(x, y float32) {
			fmt.Printf("scroll to: %.0f,%.0f\n", x, y)
		}),
	)

	input := grid.NewInputState()
	viewSize := grid.Vec2{X: 700, Y: 400}
	const dt = float32(1.0 / 60.0)

	frame := func(fill func(*grid.InputState)) {
		input.Reset()
		if fill != nil {
			fill(input)
		}
		g.Frame(input, viewSize, dt)
	}

	// Click the cell at row 1, column 1 (past the 60px row header and the
	// 25px column header, default 100x25 cells).
	frame(func(in *grid.InputState) {
		in.SetMousePos(170, 40)
		in.SetMouseButton(grid.MouseButtonLeft, true)
	})
	frame(func(in *grid.InputState) {
		in.SetMousePos(170, 40)
		in.SetMouseButton(grid.MouseButtonLeft, false)
	})

	// Type a value and commit it downward with Enter.
	frame(func(in *grid.InputState) {
		in.AddInputChar('4')
		in.AddInputChar('2')
	})
	frame(func(in *grid.InputState) {
		in.SetKey(grid.KeyEnter, true)
	})
	frame(func(in *grid.InputState) {
		in.SetKey(grid.KeyEnter, false)
	})

	// Copy the active cell and paste a tab-delimited block over it.
	frame(func(in *grid.InputState) {
		in.ModCtrl = true
		in.SetKey(grid.KeyC, true)
	})
	fmt.Printf("clipboard: %q\n", grid.ClipboardGetText())

	grid.ClipboardSetText("a\tb\nc\td")
	frame(func(in *grid.InputState) {
		in.ModCtrl = true
		in.SetKey(grid.KeyV, true)
	})

	if sel, ok := g.Selection(); ok {
		fmt.Printf("final selection: (%d,%d)-(%d,%d)\n", sel.X1, sel.Y1, sel.X2, sel.Y2)
	}
	return nil
}

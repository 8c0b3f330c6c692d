// Package glfwhost feeds GLFW window events into a grid.InputState and
// exposes the GLFW clipboard as a grid.ClipboardProvider. It contains no
// rendering; hosts pair it with whatever draws the grid.
package glfwhost

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
)

// InputAdapter adapts GLFW input to grid.InputState.
type InputAdapter struct {
	window *glfw.Window
	input  *grid.InputState
}

// NewInputAdapter creates a new GLFW input adapter and registers the
// window callbacks it needs.
func NewInputAdapter(window *glfw.Window) *InputAdapter {
	adapter := &InputAdapter{
		window: window,
		input:  grid.NewInputState(),
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update updates the input state for a new frame.
// Call this at the start of each frame, after glfw.PollEvents.
func (a *InputAdapter) Update() *grid.InputState {
	a.input.Reset()

	// Update mouse position
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	// Update modifiers
	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	a.input.ModAlt = a.window.GetKey(glfw.KeyLeftAlt) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightAlt) == glfw.Press
	a.input.ModSuper = a.window.GetKey(glfw.KeyLeftSuper) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightSuper) == glfw.Press

	return a.input
}

// Input returns the current input state.
func (a *InputAdapter) Input() *grid.InputState {
	return a.input
}

func (a *InputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	gridKey := glfwKeyToGridKey(key)
	if gridKey == grid.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(gridKey, true)
	case glfw.Release:
		a.input.SetKey(gridKey, false)
	}
}

func (a *InputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.AddInputChar(char)
}

func (a *InputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	gridButton := glfwMouseButtonToGrid(button)
	if gridButton < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(gridButton, true)
	case glfw.Release:
		a.input.SetMouseButton(gridButton, false)
	}
}

func (a *InputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *InputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// glfwKeyToGridKey maps GLFW keys to grid keys.
func glfwKeyToGridKey(key glfw.Key) grid.Key {
	switch key {
	case glfw.KeyTab:
		return grid.KeyTab
	case glfw.KeyLeft:
		return grid.KeyLeft
	case glfw.KeyRight:
		return grid.KeyRight
	case glfw.KeyUp:
		return grid.KeyUp
	case glfw.KeyDown:
		return grid.KeyDown
	case glfw.KeyPageUp:
		return grid.KeyPageUp
	case glfw.KeyPageDown:
		return grid.KeyPageDown
	case glfw.KeyHome:
		return grid.KeyHome
	case glfw.KeyEnd:
		return grid.KeyEnd
	case glfw.KeyDelete:
		return grid.KeyDelete
	case glfw.KeyBackspace:
		return grid.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return grid.KeyEnter
	case glfw.KeyEscape:
		return grid.KeyEscape
	case glfw.KeyA:
		return grid.KeyA
	case glfw.KeyC:
		return grid.KeyC
	case glfw.KeyV:
		return grid.KeyV
	case glfw.KeyX:
		return grid.KeyX
	default:
		return grid.KeyNone
	}
}

// glfwMouseButtonToGrid maps GLFW mouse buttons to grid mouse buttons.
func glfwMouseButtonToGrid(button glfw.MouseButton) grid.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return grid.MouseButtonLeft
	case glfw.MouseButtonRight:
		return grid.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return grid.MouseButtonMiddle
	default:
		return -1
	}
}

// Clipboard implements grid.ClipboardProvider on top of the GLFW window
// clipboard. Prefer this over the portable provider when a GLFW window is
// around anyway; it keeps clipboard traffic on the same display connection.
type Clipboard struct {
	window *glfw.Window
}

// NewClipboard creates a clipboard provider bound to the given window.
func NewClipboard(window *glfw.Window) *Clipboard {
	return &Clipboard{window: window}
}

// GetText returns the clipboard contents.
func (c *Clipboard) GetText() string {
	return c.window.GetClipboardString()
}

// SetText replaces the clipboard contents.
func (c *Clipboard) SetText(text string) {
	c.window.SetClipboardString(text)
}

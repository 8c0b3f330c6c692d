package grid

import "github.com/atotto/clipboard"

// SystemClipboard is a portable ClipboardProvider backed by the operating
// system clipboard. Hosts embedding the engine in a GLFW window will
// usually prefer the glfwhost backend's provider instead.
type SystemClipboard struct{}

// GetText implements ClipboardProvider. Read failures degrade to an empty
// string; paste handling already treats that as "nothing to import".
func (SystemClipboard) GetText() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		return ""
	}
	return text
}

// SetText implements ClipboardProvider. Write failures are dropped; copy is
// a best-effort side effect, not a transactional operation.
func (SystemClipboard) SetText(text string) {
	_ = clipboard.WriteAll(text)
}

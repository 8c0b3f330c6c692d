package grid

import "strings"

// ClipboardProvider abstracts system clipboard access.
// Implement this interface with platform-specific clipboard APIs, or use
// SystemClipboard / the glfwhost backend's provider.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) GetText() string {
//	    return c.window.GetClipboardString()
//	}
//
//	func (c *GLFWClipboard) SetText(text string) {
//	    c.window.SetClipboardString(text)
//	}
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// Global clipboard provider (set by application during initialization).
var clipboardProvider ClipboardProvider

// SetClipboardProvider sets the global clipboard provider.
// Call this during application initialization with a platform-specific
// implementation.
func SetClipboardProvider(cp ClipboardProvider) {
	clipboardProvider = cp
}

// GetClipboardProvider returns the current clipboard provider, or nil if not set.
func GetClipboardProvider() ClipboardProvider {
	return clipboardProvider
}

// ClipboardGetText retrieves text from the clipboard.
// Returns empty string if no clipboard provider is set.
func ClipboardGetText() string {
	if clipboardProvider != nil {
		return clipboardProvider.GetText()
	}
	return ""
}

// ClipboardSetText copies text to the clipboard.
// Does nothing if no clipboard provider is set.
func ClipboardSetText(text string) {
	if clipboardProvider != nil {
		clipboardProvider.SetText(text)
	}
}

// ClipboardAvailable returns true if a clipboard provider is configured.
func ClipboardAvailable() bool {
	return clipboardProvider != nil
}

// Delimiters for the plain-text clipboard format: cells joined by tabs,
// rows joined by newlines. The same format Excel and browser grids emit.
const (
	cellDelimiter = "\t"
	rowDelimiter  = "\n"
)

// serializeRange renders a normalized cell range as delimited text, using
// the source representation of each cell and an empty string for absent
// values.
func serializeRange(data DataSource, r CellRect) string {
	n := r.Normalized()
	var b strings.Builder
	for y := n.Y1; y <= n.Y2; y++ {
		if y > n.Y1 {
			b.WriteString(rowDelimiter)
		}
		for x := n.X1; x <= n.X2; x++ {
			if x > n.X1 {
				b.WriteString(cellDelimiter)
			}
			if v, ok := data.Value(x, y); ok {
				b.WriteString(v)
			}
		}
	}
	return b.String()
}

// parseDelimited splits clipboard text into rows of cells. Rows may be
// ragged; a trailing carriage return on each row (CRLF payloads) is
// stripped, as is one trailing row delimiter (most copy sources emit one),
// so "a\n" imports one row, not an extra empty one. The result is never
// nil for non-empty input.
func parseDelimited(text string) [][]string {
	text = strings.TrimSuffix(text, rowDelimiter)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, rowDelimiter)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		rows = append(rows, strings.Split(line, cellDelimiter))
	}
	return rows
}

// changesForPaste positions parsed rows at the anchor and returns one
// change per source cell plus the cell range the paste covers. Ragged rows
// produce a ragged import rather than an error; the returned extent spans
// the widest row.
func changesForPaste(rows [][]string, anchorX, anchorY int) ([]CellChange, CellRect) {
	extent := CellRect{X1: anchorX, Y1: anchorY, X2: anchorX, Y2: anchorY}
	if len(rows) == 0 {
		return nil, extent
	}

	var changes []CellChange
	for dy, row := range rows {
		for dx, value := range row {
			changes = append(changes, NewCellChange(anchorX+dx, anchorY+dy, value))
			if x := anchorX + dx; x > extent.X2 {
				extent.X2 = x
			}
		}
	}
	extent.Y2 = anchorY + len(rows) - 1
	return changes, extent
}

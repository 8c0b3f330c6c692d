package grid

// Axis identifies one of the two grid axes for size-change notifications.
type Axis int

const (
	AxisColumn Axis = iota
	AxisRow
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// CellChange is one element of the engine's sole write path. A nil Value
// signals deletion of the cell's content.
type CellChange struct {
	X, Y  int
	Value *string
}

// NewCellChange builds a value-setting change.
func NewCellChange(x, y int, value string) CellChange {
	return CellChange{X: x, Y: y, Value: &value}
}

// NewCellDelete builds a deletion change.
func NewCellDelete(x, y int) CellChange {
	return CellChange{X: x, Y: y}
}

package grid

// TargetSpec is a clickable sub-region declared by cell content, positioned
// relative to the cell's top-left corner.
type TargetSpec struct {
	Offset  Vec2
	Size    Vec2
	OnClick func()
}

// HitTarget is a clickable rectangle in absolute pixel space, tied back to
// the cell whose content declared it.
type HitTarget struct {
	CellX, CellY int
	Rect         Rect
	OnClick      func()
}

type binKey struct {
	X, Y int32
}

// HitIndex is a spatial hash over fixed-size square bins. It is rebuilt
// from scratch on every content or scroll change; the rebuild cost is
// bounded by the visible-cell count, and full rebuilds are far easier to
// keep correct than incremental updates.
//
// Bucket membership is only the broad phase: a lookup scans the point's
// bucket and runs an exact containment test on each candidate. Overlapping
// targets may legally share a bin; the most recently inserted target wins,
// which matches topmost content when the host inserts in paint order.
type HitIndex struct {
	binSize float32
	bins    map[binKey][]int // values index into targets, insertion ordered
	targets []HitTarget
}

// DefaultHitBinSize is the bucket edge length used when none is configured.
const DefaultHitBinSize float32 = 64

// NewHitIndex creates an empty index with the given bucket edge length.
// Non-positive sizes fall back to DefaultHitBinSize.
func NewHitIndex(binSize float32) *HitIndex {
	if binSize <= 0 {
		binSize = DefaultHitBinSize
	}
	return &HitIndex{
		binSize: binSize,
		bins:    make(map[binKey][]int),
	}
}

// Reset discards all targets, keeping allocated capacity where possible.
func (h *HitIndex) Reset() {
	h.targets = h.targets[:0]
	clear(h.bins)
}

// Insert adds a target, registering it in every bin its rectangle overlaps.
func (h *HitIndex) Insert(t HitTarget) {
	if t.Rect.W <= 0 || t.Rect.H <= 0 {
		return
	}

	idx := len(h.targets)
	h.targets = append(h.targets, t)

	minX := int32(t.Rect.X / h.binSize)
	minY := int32(t.Rect.Y / h.binSize)
	// The far edge is taken as-is: a rect ending exactly on a bin boundary
	// registers one empty extra bin, which is harmless broad-phase slack.
	// Rects are float-space, so edges land at fractional offsets.
	maxX := int32((t.Rect.X + t.Rect.W) / h.binSize)
	maxY := int32((t.Rect.Y + t.Rect.H) / h.binSize)

	for by := minY; by <= maxY; by++ {
		for bx := minX; bx <= maxX; bx++ {
			key := binKey{X: bx, Y: by}
			h.bins[key] = append(h.bins[key], idx)
		}
	}
}

// Lookup returns the target containing the point, or nil. Only the point's
// own bucket is scanned; candidates are tested newest-first so overlapping
// targets resolve to the last inserted one.
func (h *HitIndex) Lookup(p Vec2) *HitTarget {
	key := binKey{X: int32(p.X / h.binSize), Y: int32(p.Y / h.binSize)}
	candidates := h.bins[key]
	for i := len(candidates) - 1; i >= 0; i-- {
		t := &h.targets[candidates[i]]
		if t.Rect.Contains(p) {
			return t
		}
	}
	return nil
}

// Len returns the number of inserted targets.
func (h *HitIndex) Len() int { return len(h.targets) }

package grid

// SizeProvider answers "how wide is column i" or "how tall is row j" in
// pixels. The strategy (uniform value, explicit slice, callback) is chosen
// once at construction; the engine never inspects the shape per call.
type SizeProvider interface {
	Size(index int) float32
}

type uniformSizes struct {
	value float32
}

func (u uniformSizes) Size(int) float32 { return u.value }

// UniformSizes returns a provider where every index has the same size.
func UniformSizes(value float32) SizeProvider {
	return uniformSizes{value: value}
}

type sliceSizes struct {
	values []float32
	def    float32
}

func (s sliceSizes) Size(index int) float32 {
	if index >= 0 && index < len(s.values) && s.values[index] > 0 {
		return s.values[index]
	}
	return s.def
}

// SliceSizes returns a provider backed by an explicit sequence. Indices
// outside the slice, and zero entries inside it, resolve to def.
func SliceSizes(values []float32, def float32) SizeProvider {
	return sliceSizes{values: values, def: def}
}

type funcSizes struct {
	fn  func(index int) float32
	def float32
}

func (f funcSizes) Size(index int) float32 {
	if v := f.fn(index); v > 0 {
		return v
	}
	return f.def
}

// FuncSizes returns a provider backed by a callback. A non-positive result
// from the callback resolves to def.
func FuncSizes(fn func(index int) float32, def float32) SizeProvider {
	return funcSizes{fn: fn, def: def}
}

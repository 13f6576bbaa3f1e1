package engine

// fixedSource replays scripted draws. Once a script runs out Float64 returns
// 0.99 (no event fires) and Intn returns 0.
type fixedSource struct {
	floats []float64
	ints   []int
}

func (f *fixedSource) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.99
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fixedSource) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0] % n
	f.ints = f.ints[1:]
	return v
}

// constSource always returns the same float.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }
func (c constSource) Intn(n int) int   { return 0 }

package engine

// scriptRand feeds predetermined rolls into combat functions so outcomes are
// exact. Exhausted scripts fall back to midpoint values.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if r.fi < len(r.floats) {
		v := r.floats[r.fi]
		r.fi++
		return v
	}
	return 0.5
}

func (r *scriptRand) Intn(n int) int {
	if r.ii < len(r.ints) {
		v := r.ints[r.ii] % n
		r.ii++
		return v
	}
	return n / 2
}

func (r *scriptRand) drawn() int { return r.fi + r.ii }

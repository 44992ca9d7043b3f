// Some helpers using closures to generate values
package valgen

import "math/rand"

func MakeConstGen(constant float32) func() float32 {
	return func() float32 {
		return constant
	}
}

// MakeIncreasingGen yields start+step, start+2*step, ...
func MakeIncreasingGen(start, step float32) func() float32 {
	current := start
	return func() float32 {
		current += step
		return current
	}
}

func MakeRandomGen(seed int64, lo, hi float32) func() float32 {
	rng := rand.New(rand.NewSource(seed))
	return func() float32 {
		return lo + (hi-lo)*rng.Float32()
	}
}

// MakeGen resolves a generator by the name used in run files.
func MakeGen(kind string, value, step float32, seed int64) (func() float32, bool) {
	switch kind {
	case "", "constant":
		return MakeConstGen(value), true
	case "increasing":
		return MakeIncreasingGen(value, step), true
	case "random":
		return MakeRandomGen(seed, value, value+step), true
	default:
		return nil, false
	}
}

package ports

// Source of uniform randomness consumed by the customer generator and the
// route builder. *math/rand/v2.Rand satisfies it; a process-wide source shared
// across requests must be safe for concurrent use.
type RandomSource interface {
	// Return a uniform float in [0, 1).
	Float64() float64
	// Return a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

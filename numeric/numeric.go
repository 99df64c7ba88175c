// Package numeric provides the element types used by the warp-level MMA
// engine: IEEE 754 half precision (Half), bfloat16 (BFloat16), and the
// rounding-controlled conversions between them and the native float types.
//
// The reduced-precision types wrap uint16 for storage but carry float
// semantics. Arithmetic on them goes through float32; conversions back are
// controlled by a RoundStyle.
package numeric

// Element is a constraint for all types an operand fragment may hold.
// The terms are exact (no ~) so that the one-time Kind comparison in
// configuration code fully determines the element type.
type Element interface {
	float32 | float64 | Half | BFloat16
}

// RoundStyle selects the rounding behavior applied when a conversion
// cannot represent the source value exactly.
type RoundStyle int

const (
	// RoundToNearest rounds to the nearest representable value, ties to
	// even. This is the default for all float-to-float narrowing.
	RoundToNearest RoundStyle = iota

	// RoundTowardZero truncates toward zero.
	RoundTowardZero
)

// String returns a human-readable name for the rounding style.
func (r RoundStyle) String() string {
	switch r {
	case RoundToNearest:
		return "nearest-even"
	case RoundTowardZero:
		return "toward-zero"
	default:
		return "unknown"
	}
}

// PreferredRound returns the rounding style used by default when
// converting between the given element kinds. Narrowing conversions
// default to nearest-even; everything else is exact so the style is
// irrelevant and nearest-even is reported.
func PreferredRound[T, S Element]() RoundStyle {
	return RoundToNearest
}

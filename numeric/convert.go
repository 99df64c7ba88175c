package numeric

// This file provides element-wise conversion between the supported element
// types. The scalar helpers compile to straight-line code for the native
// float types; the reduced-precision types route through float32.

// Kind identifies one of the supported element types at runtime. It exists
// so that configuration code can compare the element types of two generic
// instantiations once, up front, instead of type-switching per element.
type Kind int

const (
	KindFloat32 Kind = iota
	KindFloat64
	KindHalf
	KindBFloat16
)

// String returns a human-readable name for the element kind.
func (k Kind) String() string {
	switch k {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindHalf:
		return "half"
	case KindBFloat16:
		return "bfloat16"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of the element type T.
func KindOf[T Element]() Kind {
	var z T
	switch any(z).(type) {
	case float64:
		return KindFloat64
	case Half:
		return KindHalf
	case BFloat16:
		return KindBFloat16
	default:
		return KindFloat32
	}
}

// ToFloat32 widens a single element to float32. Exact for float32, Half
// and BFloat16; float64 values round to nearest.
func ToFloat32[S Element](s S) float32 {
	switch v := any(s).(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case Half:
		return HalfToFloat32(v)
	case BFloat16:
		return BFloat16ToFloat32(v)
	default:
		return 0
	}
}

// FromFloat32 narrows a float32 to the element type T using the given
// rounding style. The style only matters for the 16-bit targets; float64
// is widening and float32 is the identity.
func FromFloat32[T Element](f float32, round RoundStyle) T {
	var z T
	switch any(z).(type) {
	case float64:
		return any(float64(f)).(T)
	case Half:
		if round == RoundTowardZero {
			return any(Float32ToHalfTrunc(f)).(T)
		}
		return any(Float32ToHalf(f)).(T)
	case BFloat16:
		if round == RoundTowardZero {
			return any(Float32ToBFloat16Trunc(f)).(T)
		}
		return any(Float32ToBFloat16(f)).(T)
	default:
		return any(f).(T)
	}
}

// Convert converts src into dst element by element with the given rounding
// style. It is element-count preserving: exactly min(len(dst), len(src))
// elements are written.
//
// Note float64 sources round to float32 range first; the engine's operand
// paths never widen beyond float32, matching the emulated operators.
func Convert[T, S Element](dst []T, src []S, round RoundStyle) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = FromFloat32[T](ToFloat32(src[i]), round)
	}
}

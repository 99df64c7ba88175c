// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package numeric

import "math"

// Half represents an IEEE 754 half-precision (binary16) floating-point
// number. It wraps uint16 for storage but provides float semantics.
//
// Format: Sign (1 bit) | Exponent (5 bits, bias 15) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
//
// Max finite value is 65504; precision is ~3.3 decimal digits. This is the
// native multiplicand type of the emulated tensor-core operators in the
// arch package.
type Half uint16

// Half constants for special values.
const (
	HalfZero      Half = 0x0000 // positive zero
	HalfNegZero   Half = 0x8000 // negative zero
	HalfOne       Half = 0x3C00 // 1.0
	HalfNegOne    Half = 0xBC00 // -1.0
	HalfMaxValue  Half = 0x7BFF // 65504, largest finite value
	HalfMinNormal Half = 0x0400 // 2^-14, smallest normal
	HalfInf       Half = 0x7C00 // positive infinity
	HalfNegInf    Half = 0xFC00 // negative infinity
	HalfNaN       Half = 0x7E00 // canonical quiet NaN
)

// HalfToFloat32 converts a Half to float32. The conversion is exact:
// every binary16 value is representable in binary32.
func HalfToFloat32(h Half) float32 {
	bits := uint32(h)
	sign := bits >> 15
	exp := (bits >> 10) & 0x1F
	mant := bits & 0x3FF

	switch {
	case exp == 0:
		if mant == 0 {
			return math.Float32frombits(sign << 31)
		}
		// Denormal: renormalize into the binary32 range.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3FF
		exp = uint32(int32(exp) + 127 - 15)
	case exp == 31:
		if mant == 0 {
			return math.Float32frombits((sign << 31) | 0x7F800000)
		}
		return math.Float32frombits((sign << 31) | 0x7FC00000 | (mant << 13))
	default:
		exp = exp + 127 - 15
	}

	return math.Float32frombits((sign << 31) | (exp << 23) | (mant << 13))
}

// Float32ToHalf converts a float32 to Half, rounding to nearest even.
// Overflow produces infinity; underflow produces a denormal or zero.
func Float32ToHalf(f float32) Half {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	if exp <= 0 {
		if exp < -10 {
			// Too small even for a denormal.
			return Half(sign)
		}
		mant = (mant | 0x800000) >> uint(1-exp)
		if mant&0x1000 != 0 && (mant&0x2FFF) != 0 {
			mant += 0x2000
		}
		return Half(sign | uint16(mant>>13))
	} else if exp == 0xFF-127+15 {
		if mant != 0 {
			// NaN: keep the quiet bit and some payload.
			return Half(sign | 0x7E00 | uint16(mant>>13))
		}
		return Half(sign | 0x7C00)
	} else if exp >= 31 {
		return Half(sign | 0x7C00)
	}

	// Normal case. Bit 12 is the rounding bit, bits 0-11 the sticky bits.
	if mant&0x1000 != 0 {
		if mant&0x2FFF != 0 {
			mant += 0x2000
			if mant&0x800000 != 0 {
				mant = 0
				exp++
				if exp >= 31 {
					return Half(sign | 0x7C00)
				}
			}
		}
	}

	return Half(sign | uint16(exp<<10) | uint16(mant>>13))
}

// Float32ToHalfTrunc converts a float32 to Half, truncating toward zero.
// Finite values that exceed the Half range saturate to the largest finite
// Half rather than producing infinity.
func Float32ToHalfTrunc(f float32) Half {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	if exp <= 0 {
		if exp < -10 {
			return Half(sign)
		}
		mant = (mant | 0x800000) >> uint(1-exp)
		return Half(sign | uint16(mant>>13))
	} else if exp == 0xFF-127+15 {
		if mant != 0 {
			return Half(sign | 0x7E00 | uint16(mant>>13))
		}
		return Half(sign | 0x7C00)
	} else if exp >= 31 {
		return Half(sign) | HalfMaxValue
	}

	return Half(sign | uint16(exp<<10) | uint16(mant>>13))
}

// IsNaN returns true if h is a NaN value.
func (h Half) IsNaN() bool {
	return (h>>10)&0x1F == 31 && h&0x3FF != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Half) IsInf() bool {
	return (h>>10)&0x1F == 31 && h&0x3FF == 0
}

// IsZero returns true if h is positive or negative zero.
func (h Half) IsZero() bool {
	return h&0x7FFF == 0
}

// IsNegative returns true if the sign bit is set.
func (h Half) IsNegative() bool {
	return h&0x8000 != 0
}

// Float32 converts this Half to float32.
func (h Half) Float32() float32 {
	return HalfToFloat32(h)
}

// Bits returns the raw uint16 representation.
func (h Half) Bits() uint16 {
	return uint16(h)
}

// HalfFromBits creates a Half from raw bits.
func HalfFromBits(bits uint16) Half {
	return Half(bits)
}

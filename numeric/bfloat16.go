// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package numeric

import "math"

// BFloat16 represents a brain floating-point number: the upper 16 bits of
// a float32. Same exponent range as float32 with 7 mantissa bits.
//
// Format: Sign (1 bit) | Exponent (8 bits, bias 127) | Mantissa (7 bits)
type BFloat16 uint16

// BFloat16 constants for special values.
const (
	BFloat16Zero   BFloat16 = 0x0000
	BFloat16One    BFloat16 = 0x3F80
	BFloat16NegOne BFloat16 = 0xBF80
	BFloat16Inf    BFloat16 = 0x7F80
	BFloat16NegInf BFloat16 = 0xFF80
	BFloat16NaN    BFloat16 = 0x7FC0
)

// BFloat16ToFloat32 converts a BFloat16 to float32. Exact: bfloat16 is
// truncated float32, so widening is a shift.
func BFloat16ToFloat32(b BFloat16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 converts a float32 to BFloat16, rounding the
// truncated bits to nearest even.
func Float32ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)

	if bits&0x7FFFFFFF > 0x7F800000 {
		// NaN: keep the sign, force a quiet NaN payload.
		return BFloat16((bits >> 16) | 0x0040)
	}

	// Round to nearest even at bit 15.
	rounding := uint32(0x7FFF) + ((bits >> 16) & 1)
	bits += rounding

	return BFloat16(bits >> 16)
}

// Float32ToBFloat16Trunc converts a float32 to BFloat16 by truncation.
func Float32ToBFloat16Trunc(f float32) BFloat16 {
	bits := math.Float32bits(f)
	if bits&0x7FFFFFFF > 0x7F800000 {
		return BFloat16((bits >> 16) | 0x0040)
	}
	return BFloat16(bits >> 16)
}

// IsNaN returns true if b is a NaN value.
func (b BFloat16) IsNaN() bool {
	return (b>>7)&0xFF == 0xFF && b&0x7F != 0
}

// IsInf returns true if b is positive or negative infinity.
func (b BFloat16) IsInf() bool {
	return (b>>7)&0xFF == 0xFF && b&0x7F == 0
}

// IsNegative returns true if the sign bit is set.
func (b BFloat16) IsNegative() bool {
	return b&0x8000 != 0
}

// Float32 converts this BFloat16 to float32.
func (b BFloat16) Float32() float32 {
	return BFloat16ToFloat32(b)
}

// Bits returns the raw uint16 representation.
func (b BFloat16) Bits() uint16 {
	return uint16(b)
}

// BFloat16FromBits creates a BFloat16 from raw bits.
func BFloat16FromBits(bits uint16) BFloat16 {
	return BFloat16(bits)
}

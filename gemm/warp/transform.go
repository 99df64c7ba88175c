// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package warp

import "github.com/mammoth831/cutlass/numeric"

// Operand conversion pipeline. The converter for each operand is picked
// once, when the TensorOp is configured, by comparing the operator's
// element kinds against the raw fragment kinds. Three rules exist:
//
//   - identity: source and target types coincide; the fragment is copied
//     unchanged, no element-wise work.
//   - general: element-wise rounding conversion per the configured style.
//   - repack: float32 sources narrowing to Half for the A operand are
//     permuted before conversion, because the packed half layout the
//     operator expects groups elements in pairs differently than the
//     float32 layout does.

// repackIndex maps output position i to the source position whose element
// lands there under the float32-to-half operand repack. Within each
// aligned group of 4, elements 1 and 2 swap:
//
//	0 1 2 3  ->  0 2 1 3
func repackIndex(i int) int {
	return ((i << 1) & 2) | ((i >> 1) & 1) | (i &^ 3)
}

// transformNeeded reports whether either operand requires conversion.
// Mirrors the one-time type comparison the constructor performs; when
// false, Transform degrades to two fragment copies.
func (t *TensorOp[TA, TB, TC, OA, OB]) transformNeeded() bool {
	return numeric.KindOf[OA]() != numeric.KindOf[TA]() ||
		numeric.KindOf[OB]() != numeric.KindOf[TB]()
}

// needsRepackA reports whether the A operand takes the permuting
// float32-to-half path.
func (t *TensorOp[TA, TB, TC, OA, OB]) needsRepackA() bool {
	return numeric.KindOf[TA]() == numeric.KindFloat32 &&
		numeric.KindOf[OA]() == numeric.KindHalf
}

// Transform converts the raw operand fragments into the element types the
// elementary operator consumes. dstA/dstB must have the same element
// counts as a/b. A converts as a whole; B converts as two independent
// halves, reflecting that the operator layout treats a higher-precision B
// fragment as two co-resident K-sub-groups.
func (t *TensorOp[TA, TB, TC, OA, OB]) Transform(dstA []OA, dstB []OB, a []TA, b []TB) {
	t.convA(dstA, a)

	half := len(b) / 2
	t.convB(dstB[:half], b[:half])
	t.convB(dstB[half:], b[half:])
}

// converterFor selects the fragment converter from source type S to
// target type T. The selection happens once per TensorOp; the returned
// function contains no type dispatch. repackable enables the permuting
// float32-to-half rule, which applies to the A operand only.
func converterFor[T, S numeric.Element](round numeric.RoundStyle, repackable bool) func(dst []T, src []S) {
	switch {
	case numeric.KindOf[T]() == numeric.KindOf[S]():
		return func(dst []T, src []S) {
			// Same element type: the assertion is the static identity.
			copy(dst, any(src).([]T))
		}
	case repackable &&
		numeric.KindOf[S]() == numeric.KindFloat32 &&
		numeric.KindOf[T]() == numeric.KindHalf:
		return func(dst []T, src []S) {
			repackF32ToHalf(any(dst).([]numeric.Half), any(src).([]float32), round)
		}
	default:
		return func(dst []T, src []S) {
			numeric.Convert(dst, src, round)
		}
	}
}

// repackF32ToHalf narrows src to half precision with the operand repack
// permutation applied: dst[i] takes the converted value of
// src[repackIndex(i)]. len(src) must be a multiple of 4; the constructor
// guarantees this for fragments routed here.
func repackF32ToHalf(dst []numeric.Half, src []float32, round numeric.RoundStyle) {
	if round == numeric.RoundTowardZero {
		for i := range dst {
			dst[i] = numeric.Float32ToHalfTrunc(src[repackIndex(i)])
		}
		return
	}
	for i := range dst {
		dst[i] = numeric.Float32ToHalf(src[repackIndex(i)])
	}
}

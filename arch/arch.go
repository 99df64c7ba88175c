// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

// Package arch provides the elementary multiply-accumulate operators the
// warp engine composes. Each operator is a fixed-shape capability: it
// computes one operator-shaped sub-tile product per invocation and knows
// nothing about the larger tile it is part of.
//
// The operators here are software emulations of tensor-core instructions,
// tagged with the architecture generation that introduced the equivalent
// hardware operation. The warp engine treats them as opaque: it only ever
// calls Invoke and reads Shape.
package arch

import (
	"github.com/mammoth831/cutlass/gemm"
	"github.com/mammoth831/cutlass/numeric"
)

// Tag identifies the architecture generation an operator models.
type Tag int

const (
	// SM70 is the first tensor-core generation (8x8x4 HMMA).
	SM70 Tag = iota

	// SM75 introduces the 16x8x8 shape and independent thread scheduling.
	SM75

	// SM80 adds bfloat16 operands and the 16x8x16 shape.
	SM80
)

// String returns the conventional name of the architecture tag.
func (t Tag) String() string {
	switch t {
	case SM70:
		return "sm70"
	case SM75:
		return "sm75"
	case SM80:
		return "sm80"
	default:
		return "unknown"
	}
}

// Operator is an elementary multiply-accumulate operation of fixed shape.
// Operand slices hold one operator-shaped sub-tile in canonical row-major
// order: a has Shape().M*Shape().K elements, b has Shape().K*Shape().N,
// c and d have Shape().M*Shape().N.
//
// Invoke computes d = a*b + c. It must tolerate d aliasing c, since the
// warp engine accumulates in place.
type Operator[TA, TB, TC numeric.Element] interface {
	// Shape returns the fixed extent of one invocation.
	Shape() gemm.Shape

	// Arch returns the architecture generation this operator models.
	Arch() Tag

	// Invoke computes d = a*b + c for one sub-tile.
	Invoke(d []TC, a []TA, b []TB, c []TC)
}

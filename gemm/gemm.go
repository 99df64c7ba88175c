// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

// Package gemm defines the shape and layout vocabulary shared by the
// matrix-multiply-accumulate engine: problem shapes (M, N, K), 2D matrix
// shapes, storage layouts, and operand identifiers.
//
// Shapes here describe logical extents only. How a tile's elements are
// distributed across the 32 lanes of a warp is the concern of the tile
// iterators that feed the warp engine, not of this package.
package gemm

import "fmt"

// Shape describes the extent of a matrix product: C[M,N] += A[M,K] * B[K,N].
type Shape struct {
	M int // rows of A and C
	N int // columns of B and C
	K int // columns of A, rows of B
}

// Count returns M*N*K, the number of scalar multiply-accumulates the
// shape represents.
func (s Shape) Count() int {
	return s.M * s.N * s.K
}

// MN returns the accumulator extent as a MatrixShape.
func (s Shape) MN() MatrixShape {
	return MatrixShape{Rows: s.M, Columns: s.N}
}

// MK returns the A operand extent as a MatrixShape.
func (s Shape) MK() MatrixShape {
	return MatrixShape{Rows: s.M, Columns: s.K}
}

// KN returns the B operand extent as a MatrixShape.
func (s Shape) KN() MatrixShape {
	return MatrixShape{Rows: s.K, Columns: s.N}
}

// String returns the shape in MxNxK form.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.M, s.N, s.K)
}

// MatrixShape describes the extent of a 2D block of elements.
type MatrixShape struct {
	Rows    int
	Columns int
}

// Count returns Rows*Columns.
func (m MatrixShape) Count() int {
	return m.Rows * m.Columns
}

// Layout selects the storage order of a matrix operand.
type Layout int

const (
	// RowMajor stores consecutive columns of one row contiguously.
	RowMajor Layout = iota

	// ColumnMajor stores consecutive rows of one column contiguously.
	ColumnMajor
)

// String returns a human-readable name for the layout.
func (l Layout) String() string {
	if l == ColumnMajor {
		return "column-major"
	}
	return "row-major"
}

// Operand identifies one of the three operands of a multiply-accumulate.
type Operand int

const (
	OperandA Operand = iota
	OperandB
	OperandC
)

// String returns "A", "B" or "C".
func (o Operand) String() string {
	switch o {
	case OperandA:
		return "A"
	case OperandB:
		return "B"
	default:
		return "C"
	}
}

// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package warp

import (
	"github.com/mammoth831/cutlass/arch"
	"github.com/mammoth831/cutlass/gemm"
	"github.com/mammoth831/cutlass/numeric"
)

// ThreadCount is the number of lanes cooperating on one warp-level tile.
// The engine itself is lane-agnostic: fragments are flat slices whose
// per-lane partitioning is fixed by the tile iterators that produce them.
const ThreadCount = 32

// Policy binds the elementary operator to the addressing pattern tile
// iterators use when walking its operands.
//
// OpDelta is the (row, column) stride, in operator shapes, between
// consecutive sub-tiles handed to one lane. The engine carries it as
// configuration for its iterator collaborators; the serpentine driver
// itself only consumes Op.
type Policy[TA, TB, TC numeric.Element] struct {
	Op      arch.Operator[TA, TB, TC]
	OpDelta gemm.MatrixShape
}

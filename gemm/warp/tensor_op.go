// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package warp

import (
	"fmt"

	"github.com/mammoth831/cutlass/gemm"
	"github.com/mammoth831/cutlass/numeric"
)

// Config describes one warp-level tensor operation. Everything in it is
// fixed for the lifetime of the TensorOp; Execute never re-inspects it.
type Config struct {
	// Shape is the logical tile computed per invocation sequence:
	// D[M,N] = A[M,K]*B[K,N] + C[M,N]. M and N must be exact multiples
	// of the operator shape; K must be a multiple of the operator K and
	// determines how many K-groups the surrounding pipeline feeds in.
	Shape gemm.Shape

	// LayoutA, LayoutB and LayoutC are the memory layouts of the operand
	// tiles. They parameterize the tile iterators that produce the
	// fragments; the engine records them but does not branch on them.
	LayoutA gemm.Layout
	LayoutB gemm.Layout
	LayoutC gemm.Layout

	// PartitionsK is the number of cooperating invocations the K
	// dimension is split across. Consumed by the tile iterators; carried
	// here as configuration. Zero means 1.
	PartitionsK int

	// PartitionsN is the number of cooperating invocations the N
	// dimension of B is split across. The partition index passed to
	// Execute selects this invocation's N sub-range. Zero means 1.
	PartitionsN int

	// AccumulatorsInRowMajor addresses the accumulator fragment row-major
	// within the iteration grid instead of column-major. A storage-order
	// choice for interleaved output layouts; it never changes values.
	// Incompatible with PartitionsN > 1.
	AccumulatorsInRowMajor bool

	// Round is the rounding style applied by operand conversions.
	Round numeric.RoundStyle
}

// TensorOp is the warp-level multiply-accumulate engine. TA, TB and TC
// are the element types of the raw A, B and C fragments; OA and OB are
// the element types the elementary operator consumes. Construct with
// NewTensorOp.
type TensorOp[TA, TB, TC, OA, OB numeric.Element] struct {
	cfg    Config
	policy Policy[OA, OB, TC]

	// Iteration grid: rows*cols elementary invocations per Execute.
	rows int // Shape.M / op.M
	cols int // max(1, Shape.N / op.N / PartitionsN)

	// bChunks is the total number of B sub-tiles across the full N
	// range; cols*PartitionsN when partitioned.
	bChunks int

	// Sub-tile element counts within the flat fragments.
	aChunk int // op.M * op.K
	bChunk int // op.K * op.N
	cChunk int // op.M * op.N

	// Operand converters, selected once at construction.
	convA func(dst []OA, src []TA)
	convB func(dst []OB, src []TB)
}

// NewTensorOp validates cfg against the operator in policy and returns
// the configured engine. All shape and type constraints are enforced
// here; the execution path performs no checks.
func NewTensorOp[TA, TB, TC, OA, OB numeric.Element](policy Policy[OA, OB, TC], cfg Config) (*TensorOp[TA, TB, TC, OA, OB], error) {
	if policy.Op == nil {
		return nil, fmt.Errorf("warp: policy has no operator")
	}
	op := policy.Op.Shape()
	s := cfg.Shape
	if s.M <= 0 || s.N <= 0 || s.K <= 0 {
		return nil, fmt.Errorf("warp: tile shape %s must be positive", s)
	}
	if s.M%op.M != 0 || s.N%op.N != 0 {
		return nil, fmt.Errorf("warp: tile shape %s not divisible by operator shape %s", s, op)
	}
	if s.K%op.K != 0 {
		return nil, fmt.Errorf("warp: tile depth K=%d not divisible by operator depth K=%d", s.K, op.K)
	}
	if cfg.PartitionsK == 0 {
		cfg.PartitionsK = 1
	}
	if cfg.PartitionsN == 0 {
		cfg.PartitionsN = 1
	}
	if cfg.PartitionsK < 1 || cfg.PartitionsN < 1 {
		return nil, fmt.Errorf("warp: partition counts must be >= 1")
	}
	if cfg.AccumulatorsInRowMajor && cfg.PartitionsN > 1 {
		return nil, fmt.Errorf("warp: row-major accumulators cannot be combined with N-partitioning")
	}

	t := &TensorOp[TA, TB, TC, OA, OB]{
		cfg:     cfg,
		policy:  policy,
		rows:    s.M / op.M,
		bChunks: s.N / op.N,
		aChunk:  op.M * op.K,
		bChunk:  op.K * op.N,
		cChunk:  op.M * op.N,
	}
	t.cols = t.bChunks / cfg.PartitionsN
	if t.cols < 1 {
		t.cols = 1
	}

	t.convA = converterFor[OA, TA](cfg.Round, true)
	t.convB = converterFor[OB, TB](cfg.Round, false)
	if t.needsRepackA() && t.FragmentALen()%4 != 0 {
		return nil, fmt.Errorf("warp: A fragment length %d not a multiple of 4, cannot repack", t.FragmentALen())
	}
	if t.transformNeeded() && t.FragmentBLen()%2 != 0 {
		return nil, fmt.Errorf("warp: B fragment length %d is odd, cannot split into K-sub-groups", t.FragmentBLen())
	}
	return t, nil
}

// Shape returns the configured tile shape.
func (t *TensorOp[TA, TB, TC, OA, OB]) Shape() gemm.Shape {
	return t.cfg.Shape
}

// Policy returns the operator policy the engine was built with.
func (t *TensorOp[TA, TB, TC, OA, OB]) Policy() Policy[OA, OB, TC] {
	return t.policy
}

// Iterations returns the iteration grid: the number of elementary
// invocations per Execute is Rows*Columns.
func (t *TensorOp[TA, TB, TC, OA, OB]) Iterations() gemm.MatrixShape {
	return gemm.MatrixShape{Rows: t.rows, Columns: t.cols}
}

// PartitionsK returns the configured K-partition count.
func (t *TensorOp[TA, TB, TC, OA, OB]) PartitionsK() int {
	return t.cfg.PartitionsK
}

// PartitionsN returns the configured N-partition count.
func (t *TensorOp[TA, TB, TC, OA, OB]) PartitionsN() int {
	return t.cfg.PartitionsN
}

// FragmentALen returns the element count of a raw or transformed A
// fragment: one operator sub-tile per grid row.
func (t *TensorOp[TA, TB, TC, OA, OB]) FragmentALen() int {
	return t.rows * t.aChunk
}

// FragmentBLen returns the element count of a raw or transformed B
// fragment. B fragments always span the full N range; the partition
// index selects the active sub-range at execution time.
func (t *TensorOp[TA, TB, TC, OA, OB]) FragmentBLen() int {
	return t.bChunks * t.bChunk
}

// FragmentCLen returns the element count of an accumulator fragment.
func (t *TensorOp[TA, TB, TC, OA, OB]) FragmentCLen() int {
	return t.rows * t.bChunks * t.cChunk
}

// Execute computes d = a*b + c for one K-group of the tile.
//
// a and b are transformed fragments (see Transform), c is the input
// accumulator fragment and d the output; d and c must not overlap unless
// identical. partitionN selects this invocation's N sub-range and must be
// in [0, PartitionsN); pass 0 when N-partitioning is not configured.
//
// The grid is visited in serpentine order: on odd columns the row
// traversal reverses, so the last A sub-tile of one column sweep is the
// first of the next. This halves A sub-tile transitions across the grid
// without affecting the result.
func (t *TensorOp[TA, TB, TC, OA, OB]) Execute(d []TC, a []OA, b []OB, c []TC, partitionN int) {
	copy(d[:t.FragmentCLen()], c)
	t.accumulate(d, a, b, partitionN)
}

// accumulate issues the elementary operator over the iteration grid,
// accumulating into d in place. Callers are responsible for seeding d.
func (t *TensorOp[TA, TB, TC, OA, OB]) accumulate(d []TC, a []OA, b []OB, partitionN int) {
	nOff := partitionN * t.bChunks / t.cfg.PartitionsN

	for n := 0; n < t.cols; n++ {
		for m := 0; m < t.rows; m++ {
			ms := m
			if n%2 == 1 {
				ms = t.rows - 1 - m
			}

			var idx int
			if t.cfg.AccumulatorsInRowMajor {
				idx = n + ms*t.cols
			} else {
				idx = ms + (n+nOff)*t.rows
			}

			aSub := a[ms*t.aChunk : (ms+1)*t.aChunk]
			bSub := b[(n+nOff)*t.bChunk : (n+nOff+1)*t.bChunk]
			dSub := d[idx*t.cChunk : (idx+1)*t.cChunk]

			t.policy.Op.Invoke(dSub, aSub, bSub, dSub)
		}
	}
}

// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package warp

import (
	"github.com/mammoth831/cutlass/internal/workerpool"
	"github.com/mammoth831/cutlass/numeric"
)

// ExecutePartitioned runs one Execute per N-partition index on the pool
// and blocks until the full accumulator tile is computed. It is
// equivalent to calling Execute sequentially for every partition index in
// [0, PartitionsN): each partition accumulates into a disjoint column
// range of d, so the partitions are free of write conflicts.
//
// With PartitionsN == 1 this degrades to a single sequential Execute.
func ExecutePartitioned[TA, TB, TC, OA, OB numeric.Element](pool *workerpool.Pool, t *TensorOp[TA, TB, TC, OA, OB], d []TC, a []OA, b []OB, c []TC) {
	copy(d[:t.FragmentCLen()], c)

	parts := t.cfg.PartitionsN
	if parts == 1 {
		t.accumulate(d, a, b, 0)
		return
	}

	pool.ParallelFor(parts, func(p int) {
		t.accumulate(d, a, b, p)
	})
}

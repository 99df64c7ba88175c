// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

// Package warp implements the warp-level matrix multiply-accumulate
// engine. A TensorOp computes one logical tile of D = A*B + C by issuing
// an elementary fixed-shape operator (arch.Operator) across a 2D
// iteration grid, visiting the grid in serpentine order to maximize reuse
// of the A sub-tile between consecutive invocations.
//
// The engine works on flat operand fragments: ordered element slices
// produced and consumed by tile-iterator collaborators. It performs no
// loads or stores beyond those fragments, no synchronization, and no
// data-dependent branching; every loop bound is fixed when the TensorOp
// is configured. Shape and type mismatches are rejected by NewTensorOp,
// never at execution time.
package warp

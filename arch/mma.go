// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package arch

import (
	"github.com/mammoth831/cutlass/gemm"
	"github.com/mammoth831/cutlass/numeric"
)

// Operator shapes by architecture generation.
var (
	shapeSM75     = gemm.Shape{M: 16, N: 8, K: 8}
	shapeSM80F16  = gemm.Shape{M: 16, N: 8, K: 16}
	shapeSM80BF16 = gemm.Shape{M: 16, N: 8, K: 8}
)

// MmaF16F32 is the 16x8x8 half*half+float32 operator (SM75 generation).
// Products are formed exactly in float32 and accumulated in float32,
// matching tensor-core HMMA semantics with float32 accumulators.
type MmaF16F32 struct{}

// NewMmaF16F32 returns the 16x8x8 f16.f32 operator.
func NewMmaF16F32() MmaF16F32 { return MmaF16F32{} }

func (MmaF16F32) Shape() gemm.Shape { return shapeSM75 }
func (MmaF16F32) Arch() Tag         { return SM75 }

// Invoke computes d = a*b + c for one 16x8x8 sub-tile.
func (op MmaF16F32) Invoke(d []float32, a []numeric.Half, b []numeric.Half, c []float32) {
	mmaHalfF32(d, a, b, c, op.Shape())
}

// MmaF16F32K16 is the 16x8x16 half*half+float32 operator (SM80 generation).
type MmaF16F32K16 struct{}

// NewMmaF16F32K16 returns the 16x8x16 f16.f32 operator.
func NewMmaF16F32K16() MmaF16F32K16 { return MmaF16F32K16{} }

func (MmaF16F32K16) Shape() gemm.Shape { return shapeSM80F16 }
func (MmaF16F32K16) Arch() Tag         { return SM80 }

// Invoke computes d = a*b + c for one 16x8x16 sub-tile.
func (op MmaF16F32K16) Invoke(d []float32, a []numeric.Half, b []numeric.Half, c []float32) {
	mmaHalfF32(d, a, b, c, op.Shape())
}

// MmaF16F16 is the 16x8x8 half*half+half operator. Each multiply-add
// rounds the running sum back to half, matching HMMA with half
// accumulators: lower precision, higher throughput on real hardware.
type MmaF16F16 struct{}

// NewMmaF16F16 returns the 16x8x8 f16.f16 operator.
func NewMmaF16F16() MmaF16F16 { return MmaF16F16{} }

func (MmaF16F16) Shape() gemm.Shape { return shapeSM75 }
func (MmaF16F16) Arch() Tag         { return SM75 }

// Invoke computes d = a*b + c for one 16x8x8 sub-tile with half
// accumulation.
func (op MmaF16F16) Invoke(d []numeric.Half, a []numeric.Half, b []numeric.Half, c []numeric.Half) {
	s := op.Shape()
	for i := 0; i < s.M; i++ {
		for j := 0; j < s.N; j++ {
			acc := c[i*s.N+j]
			for k := 0; k < s.K; k++ {
				prod := a[i*s.K+k].Float32() * b[k*s.N+j].Float32()
				acc = numeric.Float32ToHalf(acc.Float32() + prod)
			}
			d[i*s.N+j] = acc
		}
	}
}

// MmaBF16F32 is the 16x8x8 bfloat16*bfloat16+float32 operator (SM80
// generation).
type MmaBF16F32 struct{}

// NewMmaBF16F32 returns the 16x8x8 bf16.f32 operator.
func NewMmaBF16F32() MmaBF16F32 { return MmaBF16F32{} }

func (MmaBF16F32) Shape() gemm.Shape { return shapeSM80BF16 }
func (MmaBF16F32) Arch() Tag         { return SM80 }

// Invoke computes d = a*b + c for one 16x8x8 sub-tile.
func (op MmaBF16F32) Invoke(d []float32, a []numeric.BFloat16, b []numeric.BFloat16, c []float32) {
	s := op.Shape()
	for i := 0; i < s.M; i++ {
		for j := 0; j < s.N; j++ {
			acc := c[i*s.N+j]
			for k := 0; k < s.K; k++ {
				acc += a[i*s.K+k].Float32() * b[k*s.N+j].Float32()
			}
			d[i*s.N+j] = acc
		}
	}
}

// mmaHalfF32 is the shared half-multiplicand, float32-accumulator kernel.
// The K loop is dispatched once at init: see kernelHalfF32 in dispatch.go.
func mmaHalfF32(d []float32, a, b []numeric.Half, c []float32, s gemm.Shape) {
	kernelHalfF32(d, a, b, c, s.M, s.N, s.K)
}

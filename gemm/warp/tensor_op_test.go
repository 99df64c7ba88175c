// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package warp

import (
	"testing"

	"github.com/mammoth831/cutlass/arch"
	"github.com/mammoth831/cutlass/gemm"
	"github.com/mammoth831/cutlass/numeric"
)

// traceOp is a fake 16x8x8 operator that records its visitation order.
// Operand sub-tiles are tagged with their grid index in element 0, so the
// recorded pairs identify which (m, n) cell each invocation touched.
type traceOp struct {
	visits []visit
}

type visit struct {
	m, n int
}

func (*traceOp) Shape() gemm.Shape { return gemm.Shape{M: 16, N: 8, K: 8} }
func (*traceOp) Arch() arch.Tag    { return arch.SM75 }

func (op *traceOp) Invoke(d []float32, a []float32, b []float32, c []float32) {
	op.visits = append(op.visits, visit{m: int(a[0]), n: int(b[0])})
	d[0]++
}

func traceTensorOp(t *testing.T, cfg Config) (*TensorOp[float32, float32, float32, float32, float32], *traceOp) {
	t.Helper()
	op := &traceOp{}
	to, err := NewTensorOp[float32, float32, float32](Policy[float32, float32, float32]{Op: op}, cfg)
	if err != nil {
		t.Fatalf("NewTensorOp: %v", err)
	}
	return to, op
}

// taggedFragments builds A and B fragments whose sub-tiles carry their own
// grid index in element 0.
func taggedFragments(to *TensorOp[float32, float32, float32, float32, float32]) (a, b, c []float32) {
	a = make([]float32, to.FragmentALen())
	b = make([]float32, to.FragmentBLen())
	c = make([]float32, to.FragmentCLen())
	for m := 0; m < to.rows; m++ {
		a[m*to.aChunk] = float32(m)
	}
	for n := 0; n < to.bChunks; n++ {
		b[n*to.bChunk] = float32(n)
	}
	return a, b, c
}

func TestNewTensorOpValidation(t *testing.T) {
	op := arch.NewMmaF16F32()
	pol := Policy[numeric.Half, numeric.Half, float32]{Op: op}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"MNotDivisible", Config{Shape: gemm.Shape{M: 60, N: 64, K: 8}}},
		{"NNotDivisible", Config{Shape: gemm.Shape{M: 64, N: 60, K: 8}}},
		{"KNotDivisible", Config{Shape: gemm.Shape{M: 64, N: 64, K: 12}}},
		{"ZeroShape", Config{Shape: gemm.Shape{}}},
		{"NegativePartitions", Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}, PartitionsN: -1}},
		{"RowMajorWithPartitions", Config{
			Shape:                  gemm.Shape{M: 64, N: 64, K: 8},
			PartitionsN:            2,
			AccumulatorsInRowMajor: true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTensorOp[numeric.Half, numeric.Half, float32](pol, tt.cfg); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}

	t.Run("NilOperator", func(t *testing.T) {
		_, err := NewTensorOp[numeric.Half, numeric.Half, float32](
			Policy[numeric.Half, numeric.Half, float32]{},
			Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}})
		if err == nil {
			t.Error("expected error for nil operator")
		}
	})
}

func TestIterationGrid(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		rows, cols int
	}{
		{"64x64x8", Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}}, 4, 8},
		{"Partitioned", Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}, PartitionsN: 2}, 4, 4},
		{"SingleColumn", Config{Shape: gemm.Shape{M: 32, N: 8, K: 8}}, 2, 1},
		{"ClampedToOne", Config{Shape: gemm.Shape{M: 16, N: 8, K: 8}, PartitionsN: 4}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, _ := traceTensorOp(t, tt.cfg)
			grid := to.Iterations()
			if grid.Rows != tt.rows || grid.Columns != tt.cols {
				t.Errorf("grid = %dx%d, want %dx%d", grid.Rows, grid.Columns, tt.rows, tt.cols)
			}
		})
	}
}

func TestSerpentineVisitationOrder(t *testing.T) {
	// Tile 64x64x8 over a 16x8x8 operator: grid 4 rows x 8 cols,
	// 32 invocations. Odd columns reverse the row traversal.
	to, op := traceTensorOp(t, Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}})

	a, b, c := taggedFragments(to)
	d := make([]float32, to.FragmentCLen())
	to.Execute(d, a, b, c, 0)

	if len(op.visits) != 32 {
		t.Fatalf("got %d invocations, want 32", len(op.visits))
	}

	i := 0
	for n := 0; n < 8; n++ {
		for m := 0; m < 4; m++ {
			want := visit{m: m, n: n}
			if n%2 == 1 {
				want.m = 3 - m
			}
			if op.visits[i] != want {
				t.Fatalf("visit %d = %+v, want %+v", i, op.visits[i], want)
			}
			i++
		}
	}

	// Each accumulator slot is written exactly once.
	for idx := 0; idx < to.rows*to.bChunks; idx++ {
		if d[idx*to.cChunk] != 1 {
			t.Errorf("accumulator chunk %d written %v times, want 1", idx, d[idx*to.cChunk])
		}
	}
}

func TestSerpentineReusesLastASubTile(t *testing.T) {
	// The scheduling property the order exists for: the A sub-tile that
	// finishes one column sweep starts the next.
	to, op := traceTensorOp(t, Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}})

	a, b, c := taggedFragments(to)
	d := make([]float32, to.FragmentCLen())
	to.Execute(d, a, b, c, 0)

	for i := to.rows; i < len(op.visits); i += to.rows {
		if op.visits[i].m != op.visits[i-1].m {
			t.Errorf("column boundary at visit %d: A sub-tile changed from %d to %d",
				i, op.visits[i-1].m, op.visits[i].m)
		}
	}
}

// Fragment packing helpers for the real f16.f32 operator. Logical
// matrices are row-major float32; fragments hold operator-shaped
// sub-tiles in canonical row-major order, grid-row chunks for A, grid
// column chunks for B, column-major chunk addressing for C/D.

func packAHalf(mat []float32, s, op gemm.Shape) []numeric.Half {
	rows := s.M / op.M
	frag := make([]numeric.Half, rows*op.M*op.K)
	pos := 0
	for m := 0; m < rows; m++ {
		for i := 0; i < op.M; i++ {
			for k := 0; k < op.K; k++ {
				frag[pos] = numeric.Float32ToHalf(mat[(m*op.M+i)*s.K+k])
				pos++
			}
		}
	}
	return frag
}

func packBHalf(mat []float32, s, op gemm.Shape) []numeric.Half {
	cols := s.N / op.N
	frag := make([]numeric.Half, cols*op.K*op.N)
	pos := 0
	for n := 0; n < cols; n++ {
		for k := 0; k < op.K; k++ {
			for j := 0; j < op.N; j++ {
				frag[pos] = numeric.Float32ToHalf(mat[k*s.N+n*op.N+j])
				pos++
			}
		}
	}
	return frag
}

func packCColMajor(mat []float32, s, op gemm.Shape) []float32 {
	rows := s.M / op.M
	cols := s.N / op.N
	frag := make([]float32, rows*cols*op.M*op.N)
	for n := 0; n < cols; n++ {
		for m := 0; m < rows; m++ {
			chunk := (m + n*rows) * op.M * op.N
			for i := 0; i < op.M; i++ {
				for j := 0; j < op.N; j++ {
					frag[chunk+i*op.N+j] = mat[(m*op.M+i)*s.N+n*op.N+j]
				}
			}
		}
	}
	return frag
}

func unpackDColMajor(frag []float32, s, op gemm.Shape) []float32 {
	rows := s.M / op.M
	mat := make([]float32, s.M*s.N)
	for i := 0; i < s.M; i++ {
		for j := 0; j < s.N; j++ {
			m, n := i/op.M, j/op.N
			chunk := (m + n*rows) * op.M * op.N
			mat[i*s.N+j] = frag[chunk+(i%op.M)*op.N+j%op.N]
		}
	}
	return mat
}

// referenceGemm computes D = A*B + C in float32 over half-rounded inputs
// with the same k-ascending accumulation order as the operator kernels.
func referenceGemm(aMat, bMat, cMat []float32, s gemm.Shape) []float32 {
	d := make([]float32, s.M*s.N)
	for i := 0; i < s.M; i++ {
		for j := 0; j < s.N; j++ {
			acc := cMat[i*s.N+j]
			for k := 0; k < s.K; k++ {
				av := numeric.Float32ToHalf(aMat[i*s.K+k]).Float32()
				bv := numeric.Float32ToHalf(bMat[k*s.N+j]).Float32()
				acc += av * bv
			}
			d[i*s.N+j] = acc
		}
	}
	return d
}

func testMatrices(s gemm.Shape) (a, b, c []float32) {
	a = make([]float32, s.M*s.K)
	b = make([]float32, s.K*s.N)
	c = make([]float32, s.M*s.N)
	for i := range a {
		a[i] = float32(i%7) - 3
	}
	for i := range b {
		b[i] = float32(i%5)*0.25 - 0.5
	}
	for i := range c {
		c[i] = float32(i%11) * 0.125
	}
	return a, b, c
}

func newHalfTensorOp(t *testing.T, cfg Config) *TensorOp[numeric.Half, numeric.Half, float32, numeric.Half, numeric.Half] {
	t.Helper()
	pol := Policy[numeric.Half, numeric.Half, float32]{
		Op:      arch.NewMmaF16F32(),
		OpDelta: gemm.MatrixShape{Rows: 1, Columns: 1},
	}
	to, err := NewTensorOp[numeric.Half, numeric.Half, float32](pol, cfg)
	if err != nil {
		t.Fatalf("NewTensorOp: %v", err)
	}
	return to
}

func TestExecuteComputesGemm(t *testing.T) {
	s := gemm.Shape{M: 64, N: 64, K: 8}
	op := gemm.Shape{M: 16, N: 8, K: 8}
	to := newHalfTensorOp(t, Config{Shape: s})

	aMat, bMat, cMat := testMatrices(s)
	a := packAHalf(aMat, s, op)
	b := packBHalf(bMat, s, op)
	c := packCColMajor(cMat, s, op)

	d := make([]float32, to.FragmentCLen())
	to.Execute(d, a, b, c, 0)

	got := unpackDColMajor(d, s, op)
	want := referenceGemm(aMat, bMat, cMat, s)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("D[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSerpentineMatchesNaiveOrder(t *testing.T) {
	// Serpentine traversal is a scheduling choice only: accumulating the
	// same sub-tile pairs in plain double-loop order gives the identical
	// result.
	s := gemm.Shape{M: 64, N: 64, K: 8}
	op := gemm.Shape{M: 16, N: 8, K: 8}
	to := newHalfTensorOp(t, Config{Shape: s})

	aMat, bMat, cMat := testMatrices(s)
	a := packAHalf(aMat, s, op)
	b := packBHalf(bMat, s, op)
	c := packCColMajor(cMat, s, op)

	d := make([]float32, to.FragmentCLen())
	to.Execute(d, a, b, c, 0)

	// Naive forward traversal over the same grid.
	naive := make([]float32, to.FragmentCLen())
	copy(naive, c)
	mma := arch.NewMmaF16F32()
	for n := 0; n < to.cols; n++ {
		for m := 0; m < to.rows; m++ {
			idx := m + n*to.rows
			dSub := naive[idx*to.cChunk : (idx+1)*to.cChunk]
			mma.Invoke(dSub, a[m*to.aChunk:(m+1)*to.aChunk], b[n*to.bChunk:(n+1)*to.bChunk], dSub)
		}
	}

	for i := range d {
		if d[i] != naive[i] {
			t.Fatalf("d[%d] = %v, naive %v", i, d[i], naive[i])
		}
	}
}

func TestPartitionEquivalence(t *testing.T) {
	// Running once per partition index and concatenating the partition
	// column blocks equals one unpartitioned run over the full N range.
	s := gemm.Shape{M: 64, N: 64, K: 8}
	op := gemm.Shape{M: 16, N: 8, K: 8}
	const parts = 2

	aMat, bMat, cMat := testMatrices(s)
	a := packAHalf(aMat, s, op)
	b := packBHalf(bMat, s, op)
	c := packCColMajor(cMat, s, op)

	full := newHalfTensorOp(t, Config{Shape: s})
	dFull := make([]float32, full.FragmentCLen())
	full.Execute(dFull, a, b, c, 0)

	split := newHalfTensorOp(t, Config{Shape: s, PartitionsN: parts})
	cols := split.Iterations().Columns

	for p := 0; p < parts; p++ {
		dPart := make([]float32, split.FragmentCLen())
		split.Execute(dPart, a, b, c, p)

		// Partition p owns grid columns [p*cols, (p+1)*cols).
		for n := p * cols; n < (p+1)*cols; n++ {
			for m := 0; m < split.rows; m++ {
				idx := m + n*split.rows
				for e := 0; e < split.cChunk; e++ {
					if dPart[idx*split.cChunk+e] != dFull[idx*split.cChunk+e] {
						t.Fatalf("partition %d chunk (%d,%d) elem %d: got %v, want %v",
							p, m, n, e, dPart[idx*split.cChunk+e], dFull[idx*split.cChunk+e])
					}
				}
			}
		}
	}
}

func TestLayoutEquivalence(t *testing.T) {
	// Row-major vs column-major accumulator addressing stores the same
	// chunk values at transposed grid positions.
	s := gemm.Shape{M: 64, N: 64, K: 8}
	op := gemm.Shape{M: 16, N: 8, K: 8}

	aMat, bMat, _ := testMatrices(s)
	a := packAHalf(aMat, s, op)
	b := packBHalf(bMat, s, op)

	cm := newHalfTensorOp(t, Config{Shape: s})
	rm := newHalfTensorOp(t, Config{Shape: s, AccumulatorsInRowMajor: true})

	// Zero C isolates the addressing difference: the input accumulator
	// fragment is addressed by the same flag, so seeding both runs with
	// the same nonzero fragment would mean different logical C tiles.
	c := make([]float32, cm.FragmentCLen())

	dCM := make([]float32, cm.FragmentCLen())
	dRM := make([]float32, rm.FragmentCLen())
	cm.Execute(dCM, a, b, c, 0)
	rm.Execute(dRM, a, b, c, 0)

	rows, cols := cm.rows, cm.cols
	for m := 0; m < rows; m++ {
		for n := 0; n < cols; n++ {
			cmIdx := m + n*rows
			rmIdx := n + m*cols
			for e := 0; e < cm.cChunk; e++ {
				if dCM[cmIdx*cm.cChunk+e] != dRM[rmIdx*cm.cChunk+e] {
					t.Fatalf("chunk (%d,%d) elem %d: col-major %v, row-major %v",
						m, n, e, dCM[cmIdx*cm.cChunk+e], dRM[rmIdx*cm.cChunk+e])
				}
			}
		}
	}
}

func TestFragmentLengths(t *testing.T) {
	to := newHalfTensorOp(t, Config{Shape: gemm.Shape{M: 64, N: 64, K: 8}})

	if got := to.FragmentALen(); got != 4*16*8 {
		t.Errorf("FragmentALen = %d, want 512", got)
	}
	if got := to.FragmentBLen(); got != 8*8*8 {
		t.Errorf("FragmentBLen = %d, want 512", got)
	}
	if got := to.FragmentCLen(); got != 4*8*16*8 {
		t.Errorf("FragmentCLen = %d, want 4096", got)
	}
	if to.PartitionsK() != 1 || to.PartitionsN() != 1 {
		t.Error("default partition counts should be 1")
	}
}

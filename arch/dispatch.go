package arch

// This file provides the scalar kernels behind the emulated operators and
// the dispatch variable that init() in the per-GOARCH files points at the
// best variant for the host CPU. Selection happens once at package init;
// the operators themselves are branch-free.

import "github.com/mammoth831/cutlass/numeric"

// halfF32Kernel computes d = a*b + c for an m x n x k sub-tile with half
// multiplicands and float32 accumulators.
type halfF32Kernel func(d []float32, a, b []numeric.Half, c []float32, m, n, k int)

// kernelHalfF32 is the active kernel. Defaults to the portable scalar
// version; dispatch_*.go may swap in the widened variant at init.
var kernelHalfF32 halfF32Kernel = kernelHalfF32Scalar

// hasWideFMA reports whether the host CPU has fused multiply-add units
// wide enough to make the row-widened kernel profitable.
var hasWideFMA bool

// KernelName returns the name of the active half.f32 kernel, for
// diagnostics.
func KernelName() string {
	if hasWideFMA {
		return "widened"
	}
	return "scalar"
}

// kernelHalfF32Scalar is the portable reference kernel.
func kernelHalfF32Scalar(d []float32, a, b []numeric.Half, c []float32, m, n, k int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			acc := c[i*n+j]
			for p := 0; p < k; p++ {
				acc += a[i*k+p].Float32() * b[p*n+j].Float32()
			}
			d[i*n+j] = acc
		}
	}
}

// kernelHalfF32Widened widens one A element across a full row of B per
// step, so the inner loop runs over contiguous memory in both b and d.
// On FMA-capable CPUs the compiler keeps the row of d in registers.
func kernelHalfF32Widened(d []float32, a, b []numeric.Half, c []float32, m, n, k int) {
	// d may alias c; the accumulator row makes the kernel safe either way.
	var row [32]float32
	for i := 0; i < m; i++ {
		acc := row[:n]
		copy(acc, c[i*n:(i+1)*n])
		for p := 0; p < k; p++ {
			aip := a[i*k+p].Float32()
			bRow := b[p*n : (p+1)*n]
			for j := range acc {
				acc[j] += aip * bRow[j].Float32()
			}
		}
		copy(d[i*n:(i+1)*n], acc)
	}
}

//go:build amd64

package arch

import "golang.org/x/sys/cpu"

func init() {
	if scalarEnv() {
		return
	}
	// FMA implies F16C on every shipping microarchitecture, so the
	// widened kernel's float32 row accumulation maps well to hardware.
	hasWideFMA = cpu.X86.HasFMA && cpu.X86.HasAVX2
	if hasWideFMA {
		kernelHalfF32 = kernelHalfF32Widened
	}
}

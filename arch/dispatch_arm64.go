//go:build arm64

package arch

import "golang.org/x/sys/cpu"

func init() {
	if scalarEnv() {
		return
	}
	// ASIMD is baseline on arm64; the widened kernel vectorizes cleanly.
	hasWideFMA = cpu.ARM64.HasASIMD
	if hasWideFMA {
		kernelHalfF32 = kernelHalfF32Widened
	}
}

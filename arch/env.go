package arch

import (
	"os"
	"strconv"
)

// scalarEnv checks the CUTLASS_SCALAR environment variable. When set, the
// emulated operators use the portable scalar kernels regardless of CPU
// capabilities. Useful for testing and debugging.
func scalarEnv() bool {
	val := os.Getenv("CUTLASS_SCALAR")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

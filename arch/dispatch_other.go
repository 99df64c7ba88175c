//go:build !amd64 && !arm64

package arch

// Other architectures stay on the portable scalar kernel.

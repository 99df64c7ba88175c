// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

// Package main prints the CPU features the emulated tensor-core operators
// dispatch on, and the operator shapes available per architecture tag.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/mammoth831/cutlass/arch"
	"github.com/mammoth831/cutlass/gemm"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Active half.f32 kernel: %s\n", arch.KernelName())
	fmt.Println()

	switch runtime.GOARCH {
	case "amd64":
		fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
		fmt.Printf("  HasAVX2:    %v\n", cpu.X86.HasAVX2)
		fmt.Printf("  HasFMA:     %v\n", cpu.X86.HasFMA)
		fmt.Printf("  HasAVX512F: %v\n", cpu.X86.HasAVX512F)
	case "arm64":
		fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
		fmt.Printf("  HasASIMD:   %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
		fmt.Printf("  HasFPHP:    %v (FP16 scalar)\n", cpu.ARM64.HasFPHP)
		fmt.Printf("  HasASIMDHP: %v (FP16 NEON)\n", cpu.ARM64.HasASIMDHP)
	}
	fmt.Println()

	fmt.Println("=== Emulated operators ===")
	printOperator("f16.f32", arch.NewMmaF16F32().Shape(), arch.NewMmaF16F32().Arch())
	printOperator("f16.f32", arch.NewMmaF16F32K16().Shape(), arch.NewMmaF16F32K16().Arch())
	printOperator("f16.f16", arch.NewMmaF16F16().Shape(), arch.NewMmaF16F16().Arch())
	printOperator("bf16.f32", arch.NewMmaBF16F32().Shape(), arch.NewMmaBF16F32().Arch())
}

func printOperator(kind string, shape gemm.Shape, tag arch.Tag) {
	fmt.Printf("  %-9s %-9s %s\n", kind, shape, tag)
}

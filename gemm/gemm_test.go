// Copyright 2025 The go-cutlass Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import "testing"

func TestShape(t *testing.T) {
	s := Shape{M: 64, N: 64, K: 8}
	if s.Count() != 64*64*8 {
		t.Errorf("Count = %d", s.Count())
	}
	if s.String() != "64x64x8" {
		t.Errorf("String = %q", s.String())
	}
	if (s.MN() != MatrixShape{Rows: 64, Columns: 64}) {
		t.Errorf("MN = %v", s.MN())
	}
	if (s.MK() != MatrixShape{Rows: 64, Columns: 8}) {
		t.Errorf("MK = %v", s.MK())
	}
	if (s.KN() != MatrixShape{Rows: 8, Columns: 64}) {
		t.Errorf("KN = %v", s.KN())
	}
}

func TestLayoutString(t *testing.T) {
	if RowMajor.String() != "row-major" || ColumnMajor.String() != "column-major" {
		t.Error("unexpected layout names")
	}
}

func TestOperandString(t *testing.T) {
	if OperandA.String() != "A" || OperandB.String() != "B" || OperandC.String() != "C" {
		t.Error("unexpected operand names")
	}
}

//
// batch_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"testing"

	"github.com/spdzgo/runtime/env"
)

func TestPOpenStartStopRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Nsp: 1, Np: 1})
	v := proc.ArithField.FromUint64(7)
	proc.Regs.SetSecretP(0, mkShare(v))

	if err := proc.POpenStart([]int{0}); err != nil {
		t.Fatal(err)
	}
	if err := proc.POpenStop([]int{0}); err != nil {
		t.Fatal(err)
	}
	if _, err := proc.Regs.ClearP(0); err != nil {
		t.Fatalf("expected Cp[0] populated: %v", err)
	}
}

func TestMultStartStopRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Nsp: 2})
	v := proc.ArithField.FromUint64(3)
	proc.Regs.SetSecretP(0, mkShare(v))
	proc.Regs.SetSecretP(1, mkShare(v))

	if err := proc.MultStart([]int{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := proc.MultStop([]int{0}); err != nil {
		t.Fatal(err)
	}
}

func TestBinOpenStartStopRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Ns2: 1, N2: 1})
	v := proc.BinField.FromUint64(1)
	proc.Regs.SetSecretBit(0, mkShare(v))

	if err := proc.BinOpenStart([]int{0}); err != nil {
		t.Fatal(err)
	}
	if err := proc.BinOpenStop([]int{0}); err != nil {
		t.Fatal(err)
	}
	if _, err := proc.Regs.ClearBit(0); err != nil {
		t.Fatalf("expected C2[0] populated: %v", err)
	}
}

func TestBinMultStartStopRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Ns2: 2})
	v := proc.BinField.FromUint64(1)
	proc.Regs.SetSecretBit(0, mkShare(v))
	proc.Regs.SetSecretBit(1, mkShare(v))

	if err := proc.BinMultStart([]int{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := proc.BinMultStop([]int{0}); err != nil {
		t.Fatal(err)
	}
}

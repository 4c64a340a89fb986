//
// registers.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"fmt"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/share"
)

// Sizes specifies the five register bank sizes read from a program
// header at reset.
type Sizes struct {
	Np  int // Cp: clear arithmetic
	Nsp int // Sp: secret arithmetic
	N2  int // C2: clear binary
	Ns2 int // S2: secret binary
	Ni  int // Ci: integers
}

// RegisterFile holds the five typed register banks: Cp, Sp, C2, S2,
// and Ci. Registers are created at Reset, mutated only by opcode
// handlers, and discarded at Processor teardown.
type RegisterFile struct {
	ArithField field.Field
	BinField   field.Field

	Cp []field.Element
	Sp []share.Share
	C2 []field.Element
	S2 []share.Share
	Ci []int64
}

// Reset (re)allocates every bank to the given sizes, zero-filled.
func (rf *RegisterFile) Reset(sizes Sizes) {
	rf.Cp = make([]field.Element, sizes.Np)
	for i := range rf.Cp {
		rf.Cp[i] = rf.ArithField.Zero()
	}
	rf.Sp = make([]share.Share, sizes.Nsp)
	for i := range rf.Sp {
		rf.Sp[i] = share.Share{A: rf.ArithField.Zero(), Mac: rf.ArithField.Zero()}
	}
	rf.C2 = make([]field.Element, sizes.N2)
	for i := range rf.C2 {
		rf.C2[i] = rf.BinField.Zero()
	}
	rf.S2 = make([]share.Share, sizes.Ns2)
	for i := range rf.S2 {
		rf.S2[i] = share.Share{A: rf.BinField.Zero(), Mac: rf.BinField.Zero()}
	}
	rf.Ci = make([]int64, sizes.Ni)
}

func boundsCheck(bank string, idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("processor: BadOpcodeShape: register %s[%d] out of range [0,%d)", bank, idx, n)
	}
	return nil
}

// ClearP returns register Cp[i].
func (rf *RegisterFile) ClearP(i int) (field.Element, error) {
	if err := boundsCheck("Cp", i, len(rf.Cp)); err != nil {
		return nil, err
	}
	return rf.Cp[i], nil
}

// SetClearP sets register Cp[i].
func (rf *RegisterFile) SetClearP(i int, v field.Element) error {
	if err := boundsCheck("Cp", i, len(rf.Cp)); err != nil {
		return err
	}
	rf.Cp[i] = v
	return nil
}

// SecretP returns register Sp[i].
func (rf *RegisterFile) SecretP(i int) (share.Share, error) {
	if err := boundsCheck("Sp", i, len(rf.Sp)); err != nil {
		return share.Share{}, err
	}
	return rf.Sp[i], nil
}

// SetSecretP sets register Sp[i].
func (rf *RegisterFile) SetSecretP(i int, v share.Share) error {
	if err := boundsCheck("Sp", i, len(rf.Sp)); err != nil {
		return err
	}
	rf.Sp[i] = v
	return nil
}

// ClearBit returns register C2[i].
func (rf *RegisterFile) ClearBit(i int) (field.Element, error) {
	if err := boundsCheck("C2", i, len(rf.C2)); err != nil {
		return nil, err
	}
	return rf.C2[i], nil
}

// SetClearBit sets register C2[i].
func (rf *RegisterFile) SetClearBit(i int, v field.Element) error {
	if err := boundsCheck("C2", i, len(rf.C2)); err != nil {
		return err
	}
	rf.C2[i] = v
	return nil
}

// SecretBit returns register S2[i].
func (rf *RegisterFile) SecretBit(i int) (share.Share, error) {
	if err := boundsCheck("S2", i, len(rf.S2)); err != nil {
		return share.Share{}, err
	}
	return rf.S2[i], nil
}

// SetSecretBit sets register S2[i].
func (rf *RegisterFile) SetSecretBit(i int, v share.Share) error {
	if err := boundsCheck("S2", i, len(rf.S2)); err != nil {
		return err
	}
	rf.S2[i] = v
	return nil
}

// Int returns register Ci[i].
func (rf *RegisterFile) Int(i int) (int64, error) {
	if err := boundsCheck("Ci", i, len(rf.Ci)); err != nil {
		return 0, err
	}
	return rf.Ci[i], nil
}

// SetInt sets register Ci[i].
func (rf *RegisterFile) SetInt(i int, v int64) error {
	if err := boundsCheck("Ci", i, len(rf.Ci)); err != nil {
		return err
	}
	rf.Ci[i] = v
	return nil
}

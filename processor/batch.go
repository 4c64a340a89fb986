//
// batch.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"fmt"

	"github.com/spdzgo/runtime/share"
)

// POpenStart implements POpen_Start: gather Sp[srcRegs] and begin an
// arithmetic open batch.
func (p *Processor) POpenStart(srcRegs []int) error {
	shares := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		s, err := p.Regs.SecretP(reg)
		if err != nil {
			return err
		}
		shares[i] = s
	}
	return p.arithOpener.StartOpen(shares)
}

// POpenStop implements POpen_Stop: finish the open begun by
// POpenStart and scatter the opened clears into Cp[destRegs].
func (p *Processor) POpenStop(destRegs []int) error {
	clears, err := p.arithOpener.FinishOpen()
	if err != nil {
		return err
	}
	if len(clears) != len(destRegs) {
		return NewError(ErrBadOpcodeShape, "popen_stop",
			fmt.Errorf("backend returned %d clears, want %d", len(clears), len(destRegs)))
	}
	for i, reg := range destRegs {
		if err := p.Regs.SetClearP(reg, clears[i]); err != nil {
			return err
		}
	}
	return nil
}

// MultStart implements Ext_Mult_Start: gather Sp[srcRegs] (even count)
// and begin an arithmetic multiply batch.
func (p *Processor) MultStart(srcRegs []int) error {
	ops := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		s, err := p.Regs.SecretP(reg)
		if err != nil {
			return err
		}
		ops[i] = s
	}
	return p.arithOpener.StartMultBatch(ops)
}

// MultStop implements Ext_Mult_Stop: finish the multiply begun by
// MultStart and scatter the product shares into Sp[destRegs].
func (p *Processor) MultStop(destRegs []int) error {
	products, err := p.arithOpener.FinishMult()
	if err != nil {
		return err
	}
	if len(products) != len(destRegs) {
		return NewError(ErrBadOpcodeShape, "mult_stop",
			fmt.Errorf("backend returned %d products, want %d", len(products), len(destRegs)))
	}
	for i, reg := range destRegs {
		if err := p.Regs.SetSecretP(reg, products[i]); err != nil {
			return err
		}
	}
	return nil
}

// BinOpenStart implements POpen_Start against the binary context: gather
// S2[srcRegs] and begin a binary open batch.
func (p *Processor) BinOpenStart(srcRegs []int) error {
	shares := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		s, err := p.Regs.SecretBit(reg)
		if err != nil {
			return err
		}
		shares[i] = s
	}
	return p.binOpener.StartOpen(shares)
}

// BinOpenStop implements POpen_Stop against the binary context: finish
// the open begun by BinOpenStart and scatter the opened clears into
// C2[destRegs].
func (p *Processor) BinOpenStop(destRegs []int) error {
	clears, err := p.binOpener.FinishOpen()
	if err != nil {
		return err
	}
	if len(clears) != len(destRegs) {
		return NewError(ErrBadOpcodeShape, "bopen_stop",
			fmt.Errorf("backend returned %d clears, want %d", len(clears), len(destRegs)))
	}
	for i, reg := range destRegs {
		if err := p.Regs.SetClearBit(reg, clears[i]); err != nil {
			return err
		}
	}
	return nil
}

// BinMultStart implements Ext_Mult_Start against the binary context:
// gather S2[srcRegs] (even count) and begin a binary multiply batch.
func (p *Processor) BinMultStart(srcRegs []int) error {
	ops := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		s, err := p.Regs.SecretBit(reg)
		if err != nil {
			return err
		}
		ops[i] = s
	}
	return p.binOpener.StartMultBatch(ops)
}

// BinMultStop implements Ext_Mult_Stop against the binary context:
// finish the multiply begun by BinMultStart and scatter the product
// shares into S2[destRegs].
func (p *Processor) BinMultStop(destRegs []int) error {
	products, err := p.binOpener.FinishMult()
	if err != nil {
		return err
	}
	if len(products) != len(destRegs) {
		return NewError(ErrBadOpcodeShape, "bmult_stop",
			fmt.Errorf("backend returned %d products, want %d", len(products), len(destRegs)))
	}
	for i, reg := range destRegs {
		if err := p.Regs.SetSecretBit(reg, products[i]); err != nil {
			return err
		}
	}
	return nil
}

//
// skew.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"fmt"

	"github.com/spdzgo/runtime/share"
)

// SkewBitDecomp implements Ext_Skew_Bit_Decomp_R2B/_B2B/_B2R: it takes
// the secret ring share in register Sp[src] and expands it into
// len(destRegs) secret bit shares, installed into S2[destRegs[i]] in
// least-significant-first order. The call is synchronous (no
// Start/Stop batching): this runtime's extension ABI table lists
// skew_bit_decomp/skew_ring_comp as single calls, not a batch pair
// like open/mult.
func (p *Processor) SkewBitDecomp(src int, destRegs []int) error {
	in, err := p.Regs.SecretP(src)
	if err != nil {
		return err
	}
	buf := marshalShares([]share.Share{in}, p.ArithField, ringMDSize(p.ArithField))
	out, err := p.ArithCtx.Backend.SkewBitDecomp(p.ArithCtx, buf)
	if err != nil {
		return NewError(ErrBackendCallFailure, "skew_bit_decomp", err)
	}
	bits, err := unmarshalShares(out, p.BinField)
	if err != nil {
		return NewError(ErrBackendCallFailure, "skew_bit_decomp", err)
	}
	if len(bits) != len(destRegs) {
		return NewError(ErrBadOpcodeShape, "skew_bit_decomp",
			fmt.Errorf("backend returned %d bit shares, want %d", len(bits), len(destRegs)))
	}
	for i, reg := range destRegs {
		if err := p.Regs.SetSecretBit(reg, bits[i]); err != nil {
			return err
		}
	}
	return nil
}

// SkewRingComp implements Ext_Skew_Ring_Comp: the inverse of
// SkewBitDecomp, composing len(srcRegs) secret bit shares back into a
// single secret ring share, installed into Sp[dest].
func (p *Processor) SkewRingComp(srcRegs []int, dest int) error {
	bits := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		b, err := p.Regs.SecretBit(reg)
		if err != nil {
			return err
		}
		bits[i] = b
	}
	buf := marshalShares(bits, p.BinField, bitMDSize)
	out, err := p.ArithCtx.Backend.SkewRingComp(p.ArithCtx, buf)
	if err != nil {
		return NewError(ErrBackendCallFailure, "skew_ring_comp", err)
	}
	rings, err := unmarshalShares(out, p.ArithField)
	if err != nil {
		return NewError(ErrBackendCallFailure, "skew_ring_comp", err)
	}
	if len(rings) != 1 {
		return NewError(ErrBadOpcodeShape, "skew_ring_comp",
			fmt.Errorf("backend returned %d ring shares, want 1", len(rings)))
	}
	return p.Regs.SetSecretP(dest, rings[0])
}

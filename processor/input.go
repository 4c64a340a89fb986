//
// input.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
)

// InputKind selects which of the three input opcodes is being
// performed: Ext_Input_Share_Int, _Fix, or BInput_Share_Int.
type InputKind int

// Input kinds.
const (
	InputInt InputKind = iota
	InputFix
	InputBit
)

func readIntLines(s *bufio.Scanner, name string, n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		line, err := nextLine(s, name)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, NewError(ErrInputFileExhausted, name, err)
		}
		out[i] = v
	}
	return out, nil
}

func readFixLines(s *bufio.Scanner, name string, n int) ([]string, error) {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		line, err := nextLine(s, name)
		if err != nil {
			return nil, err
		}
		out[i] = line
	}
	return out, nil
}

// Input performs a batched input opcode from one party: only
// sharingPartyID reads its input file; every other party presents a
// zeroed clear buffer of the same shape. All parties then invoke
// input_party, and each installs its resulting shares into destRegs.
func (p *Processor) Input(kind InputKind, sharingPartyID int, destRegs []int) error {
	n := len(destRegs)
	ctx, f := p.inputContext(kind)

	var clearIn ext.Clear
	var err error
	if p.PartyID == sharingPartyID {
		clearIn, err = p.readOwnInput(kind, n)
	} else {
		clearIn, err = p.zeroedClearBuffer(kind, n)
	}
	if err != nil {
		return err
	}

	shareOut, err := ctx.Backend.InputParty(ctx, sharingPartyID, clearIn)
	if err != nil {
		return NewError(ErrBackendCallFailure, "input_party", err)
	}

	shares, err := unmarshalShares(shareOut, f)
	if err != nil {
		return NewError(ErrBackendCallFailure, "input_party", err)
	}
	if len(shares) != n {
		return NewError(ErrBadOpcodeShape, "input_party",
			fmt.Errorf("backend returned %d shares, want %d", len(shares), n))
	}

	for i, reg := range destRegs {
		if kind == InputBit {
			if err := p.Regs.SetSecretBit(reg, shares[i]); err != nil {
				return err
			}
		} else {
			if err := p.Regs.SetSecretP(reg, shares[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Processor) inputContext(kind InputKind) (*ext.Context, field.Field) {
	if kind == InputBit {
		return p.BinCtx, p.BinField
	}
	return p.ArithCtx, p.ArithField
}

func (p *Processor) readOwnInput(kind InputKind, n int) (ext.Clear, error) {
	switch kind {
	case InputInt:
		vals, err := readIntLines(p.in.integers, "integers_input", n)
		if err != nil {
			return ext.Clear{}, err
		}
		return p.ArithCtx.Backend.MakeInputFromIntegers(p.ArithCtx, vals)
	case InputFix:
		strs, err := readFixLines(p.in.fixes, "fixes_input", n)
		if err != nil {
			return ext.Clear{}, err
		}
		return p.ArithCtx.Backend.MakeInputFromFixed(p.ArithCtx, strs)
	case InputBit:
		vals, err := readIntLines(p.in.bits, "bits_input", n)
		if err != nil {
			return ext.Clear{}, err
		}
		return p.BinCtx.Backend.MakeInputFromIntegers(p.BinCtx, vals)
	default:
		return ext.Clear{}, fmt.Errorf("processor: unknown input kind %d", kind)
	}
}

func (p *Processor) zeroedClearBuffer(kind InputKind, n int) (ext.Clear, error) {
	zeros := make([]uint64, n)
	if kind == InputBit {
		return p.BinCtx.Backend.MakeInputFromIntegers(p.BinCtx, zeros)
	}
	return p.ArithCtx.Backend.MakeInputFromIntegers(p.ArithCtx, zeros)
}

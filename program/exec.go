//
// exec.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package program

import (
	"fmt"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/persistence"
	"github.com/spdzgo/runtime/processor"
	"github.com/spdzgo/runtime/share"
)

// Exec drives one Processor through one Program's instruction stream,
// in order, dispatching each Instruction to the Processor method (or
// local register-arithmetic helper) that implements its opcode. It
// resets the Processor's register banks to the program's declared
// Sizes before the first instruction runs.
//
// sockets and stores may be nil if the program issues no socket or
// file-persistence opcodes; Exec only consults them when an
// instruction actually needs one.
type Exec struct {
	Proc    *processor.Processor
	Sockets *processor.Sockets
	Stores  map[int]*persistence.Store
}

// NewExec builds an executor bound to proc. sockets and stores may be
// nil.
func NewExec(proc *processor.Processor, sockets *processor.Sockets, stores map[int]*persistence.Store) *Exec {
	return &Exec{Proc: proc, Sockets: sockets, Stores: stores}
}

// Run resets the processor's register banks to p.Sizes and executes
// every instruction in order, stopping at the first error.
func (e *Exec) Run(p *Program) error {
	e.Proc.Regs.Reset(p.Sizes)
	for pc, inst := range p.Instructions {
		if err := e.step(inst); err != nil {
			return fmt.Errorf("program: instruction %d (%s): %w", pc, inst.Op, err)
		}
	}
	return nil
}

func intArg(args []int64, i int) int {
	return int(args[i])
}

func intArgs(args []int64) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i] = int(a)
	}
	return out
}

func elementFromInt64(f field.Field, v int64) field.Element {
	if v < 0 {
		return f.FromUint64(uint64(-v)).Negate()
	}
	return f.FromUint64(uint64(v))
}

func (e *Exec) step(inst Instruction) error {
	p := e.Proc
	args := inst.Args

	switch inst.Op {
	case OpLdi:
		dst := intArg(args, 0)
		return p.Regs.SetClearP(dst, elementFromInt64(p.ArithField, args[1]))

	case OpLdsi:
		dst := intArg(args, 0)
		c := elementFromInt64(p.ArithField, args[1])
		s := share.ShareFromClear(c, p.PartyID, p.ArithAlphaI)
		return p.Regs.SetSecretP(dst, s)

	case OpAddc:
		return e.binaryClear(args, func(a, b field.Element) field.Element { return a.Add(b) })

	case OpMulc:
		return e.binaryClear(args, func(a, b field.Element) field.Element { return a.Mul(b) })

	case OpAdds:
		return e.binarySecret(args, share.Add)

	case OpAddm:
		dst, aReg, cReg := intArg(args, 0), intArg(args, 1), intArg(args, 2)
		a, err := p.Regs.SecretP(aReg)
		if err != nil {
			return err
		}
		c, err := p.Regs.ClearP(cReg)
		if err != nil {
			return err
		}
		s := share.AddConst(a, c, p.PartyID == 0, p.ArithAlphaI)
		return p.Regs.SetSecretP(dst, s)

	case OpMulm:
		dst, aReg, cReg := intArg(args, 0), intArg(args, 1), intArg(args, 2)
		a, err := p.Regs.SecretP(aReg)
		if err != nil {
			return err
		}
		c, err := p.Regs.ClearP(cReg)
		if err != nil {
			return err
		}
		return p.Regs.SetSecretP(dst, share.MulConst(c, a))

	case OpPOpenStart:
		return p.POpenStart(intArgs(args))

	case OpPOpenStop:
		return p.POpenStop(intArgs(args))

	case OpMultStart:
		return p.MultStart(intArgs(args))

	case OpMultStop:
		return p.MultStop(intArgs(args))

	case OpBinOpenStart:
		return p.BinOpenStart(intArgs(args))

	case OpBinOpenStop:
		return p.BinOpenStop(intArgs(args))

	case OpBinMultStart:
		return p.BinMultStart(intArgs(args))

	case OpBinMultStop:
		return p.BinMultStop(intArgs(args))

	case OpSkewBitDecomp:
		src := intArg(args, 0)
		return p.SkewBitDecomp(src, intArgs(args[1:]))

	case OpSkewRingComp:
		dst := intArg(args, 0)
		return p.SkewRingComp(intArgs(args[1:]), dst)

	case OpInputInt:
		party := intArg(args, 0)
		return p.Input(processor.InputInt, party, intArgs(args[1:]))

	case OpInputFix:
		party := intArg(args, 0)
		return p.Input(processor.InputFix, party, intArgs(args[1:]))

	case OpInputBit:
		party := intArg(args, 0)
		return p.Input(processor.InputBit, party, intArgs(args[1:]))

	case OpWriteSocket:
		socketID, msgType := intArg(args, 0), uint32(args[1])
		return p.WriteSocket(e.Sockets, socketID, msgType, processor.RegSecret, processor.SecrecyModp, false, intArgs(args[2:]))

	case OpReadSocketInts:
		socketID, msgType := intArg(args, 0), uint32(args[1])
		return p.ReadSocketInts(e.Sockets, socketID, msgType, intArgs(args[2:]))

	case OpReadSocketVector:
		socketID, msgType := intArg(args, 0), uint32(args[1])
		return p.ReadSocketVector(e.Sockets, socketID, msgType, intArgs(args[2:]))

	case OpReadSocketPrivate:
		socketID, msgType, expectMacs := intArg(args, 0), uint32(args[1]), args[2] != 0
		return p.ReadSocketPrivate(e.Sockets, socketID, msgType, expectMacs, intArgs(args[3:]))

	case OpReadSharesFromFile:
		storeID, startPosn, endPosnReg := intArg(args, 0), args[1], intArg(args, 2)
		store, err := e.store(storeID)
		if err != nil {
			return err
		}
		return p.ReadSharesFromFile(store, startPosn, intArgs(args[3:]), endPosnReg)

	case OpWriteSharesToFile:
		storeID := intArg(args, 0)
		store, err := e.store(storeID)
		if err != nil {
			return err
		}
		return p.WriteSharesToFile(store, intArgs(args[1:]))

	default:
		return fmt.Errorf("program: unimplemented opcode %s", inst.Op)
	}
}

func (e *Exec) store(id int) (*persistence.Store, error) {
	store, ok := e.Stores[id]
	if !ok {
		return nil, fmt.Errorf("program: no store registered for id %d", id)
	}
	return store, nil
}

func (e *Exec) binaryClear(args []int64, op func(a, b field.Element) field.Element) error {
	dst, aReg, bReg := intArg(args, 0), intArg(args, 1), intArg(args, 2)
	a, err := e.Proc.Regs.ClearP(aReg)
	if err != nil {
		return err
	}
	b, err := e.Proc.Regs.ClearP(bReg)
	if err != nil {
		return err
	}
	return e.Proc.Regs.SetClearP(dst, op(a, b))
}

func (e *Exec) binarySecret(args []int64, op func(t, u share.Share) share.Share) error {
	dst, aReg, bReg := intArg(args, 0), intArg(args, 1), intArg(args, 2)
	a, err := e.Proc.Regs.SecretP(aReg)
	if err != nil {
		return err
	}
	b, err := e.Proc.Regs.SecretP(bReg)
	if err != nil {
		return err
	}
	return e.Proc.Regs.SetSecretP(dst, op(a, b))
}

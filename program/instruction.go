//
// instruction.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package program implements the in-memory bytecode representation
// the processor executes, and a human-readable assembler/disassembler
// text format for it, used by tests and the command-line front ends.
package program

import (
	"fmt"

	"github.com/spdzgo/runtime/processor"
)

// Opcode names one register-machine instruction, spanning the basic
// register-arithmetic, arithmetic/binary open/multiply, input, socket,
// and file-share opcode families.
type Opcode int

// Opcodes.
const (
	OpLdi  Opcode = iota // ldi dst, imm: Cp[dst] = imm
	OpLdsi               // ldsi dst, imm: Sp[dst] = share_from_clear(imm)
	OpAddc               // addc dst, a, b: Cp[dst] = Cp[a] + Cp[b]
	OpMulc               // mulc dst, a, b: Cp[dst] = Cp[a] * Cp[b]
	OpAdds               // adds dst, a, b: Sp[dst] = Sp[a] + Sp[b]
	OpAddm               // addm dst, a, b: Sp[dst] = Sp[a] + Cp[b] (affine)
	OpMulm               // mulm dst, a, b: Sp[dst] = Cp[b] * Sp[a]

	OpPOpenStart // popen_start regs...: gather Sp[regs] and start an open
	OpPOpenStop  // popen_stop regs...: finish the open, scatter into Cp[regs]

	OpMultStart // mult_start regs...: gather Sp[regs] (even count) and start a multiply
	OpMultStop  // mult_stop regs...: finish the multiply, scatter into Sp[regs]

	OpBinOpenStart // bopen_start regs...: gather S2[regs] and start a binary open
	OpBinOpenStop  // bopen_stop regs...: finish the open, scatter into C2[regs]

	OpBinMultStart // bmult_start regs...: gather S2[regs] (even count) and start a binary multiply
	OpBinMultStop  // bmult_stop regs...: finish the multiply, scatter into S2[regs]

	OpSkewBitDecomp // skew_bit_decomp src, dst...: ring share to bit shares
	OpSkewRingComp  // skew_ring_comp dst, src...: bit shares to ring share

	OpInputInt // input_int party, regs...
	OpInputFix // input_fix party, regs...
	OpInputBit // input_bit party, regs...

	OpWriteSocket       // write_socket socket, msgtype, regs...
	OpReadSocketInts    // read_socket_ints socket, msgtype, regs...
	OpReadSocketVector  // read_socket_vector socket, msgtype, regs...
	OpReadSocketPrivate // read_socket_private socket, msgtype, expectmacs, regs...

	OpReadSharesFromFile // read_shares_from_file storeid, startposn, endposnreg, regs...
	OpWriteSharesToFile  // write_shares_to_file storeid, regs...
)

var opcodeNames = map[Opcode]string{
	OpLdi:                 "ldi",
	OpLdsi:                "ldsi",
	OpAddc:                "addc",
	OpMulc:                "mulc",
	OpAdds:                "adds",
	OpAddm:                "addm",
	OpMulm:                "mulm",
	OpPOpenStart:          "popen_start",
	OpPOpenStop:           "popen_stop",
	OpMultStart:           "mult_start",
	OpMultStop:            "mult_stop",
	OpBinOpenStart:        "bopen_start",
	OpBinOpenStop:         "bopen_stop",
	OpBinMultStart:        "bmult_start",
	OpBinMultStop:         "bmult_stop",
	OpSkewBitDecomp:       "skew_bit_decomp",
	OpSkewRingComp:        "skew_ring_comp",
	OpInputInt:            "input_int",
	OpInputFix:            "input_fix",
	OpInputBit:            "input_bit",
	OpWriteSocket:         "write_socket",
	OpReadSocketInts:      "read_socket_ints",
	OpReadSocketVector:    "read_socket_vector",
	OpReadSocketPrivate:   "read_socket_private",
	OpReadSharesFromFile:  "read_shares_from_file",
	OpWriteSharesToFile:   "write_shares_to_file",
}

var namesToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// ParseOpcode resolves a mnemonic to its Opcode.
func ParseOpcode(name string) (Opcode, error) {
	op, ok := namesToOpcode[name]
	if !ok {
		return 0, fmt.Errorf("program: unknown opcode %q", name)
	}
	return op, nil
}

// Instruction is one bytecode instruction: an opcode and its integer
// operand list (register indices, immediates, or party/socket ids
// depending on the opcode).
type Instruction struct {
	Op   Opcode
	Args []int64
}

// Program is a complete bytecode unit: its register bank sizes (the
// header a Processor resets to) and its instruction stream.
type Program struct {
	Sizes        processor.Sizes
	Instructions []Instruction
}

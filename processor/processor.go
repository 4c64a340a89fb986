//
// processor.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package processor implements the register-machine execution engine:
// five typed register banks driven by opcodes that read/write them and
// delegate to a pair of extension contexts (arithmetic, binary) for
// every cryptographic operation.
package processor

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
)

// inputFiles are the four per-party input streams opened at
// construction: integers, fixed-point values, bits, and persisted
// shares.
type inputFiles struct {
	integers *bufio.Scanner
	fixes    *bufio.Scanner
	bits     *bufio.Scanner
	shares   *bufio.Scanner

	closers []*os.File
}

func openInputFiles(partyID int) (*inputFiles, error) {
	in := &inputFiles{}
	open := func(name string) (*bufio.Scanner, error) {
		f, err := os.Open(name)
		if err != nil {
			return nil, NewError(ErrInputFileMissing, "open", err)
		}
		in.closers = append(in.closers, f)
		return bufio.NewScanner(f), nil
	}

	var err error
	if in.integers, err = open(fmt.Sprintf("integers_input_%d.txt", partyID)); err != nil {
		return nil, err
	}
	if in.fixes, err = open(fmt.Sprintf("fixes_input_%d.txt", partyID)); err != nil {
		return nil, err
	}
	if in.bits, err = open(fmt.Sprintf("bits_input_%d.txt", partyID)); err != nil {
		return nil, err
	}
	if in.shares, err = open(fmt.Sprintf("shares_input_%d.txt", partyID)); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *inputFiles) close() {
	for _, f := range in.closers {
		f.Close()
	}
}

// nextLine reads the next line from s, returning InputFileExhausted
// once the stream runs dry: this is fatal, since a
// program that declared an input opcode without enough backing data
// cannot proceed correctly.
func nextLine(s *bufio.Scanner, name string) (string, error) {
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", NewError(ErrInputFileExhausted, name, err)
		}
		return "", NewError(ErrInputFileExhausted, name, fmt.Errorf("end of input"))
	}
	return s.Text(), nil
}

// Processor is the per-party register-machine engine. One Processor
// drives one party's execution of one program; a multi-party run
// couples NumParties Processors through their shared extension
// backends and, for client-facing I/O, the client package.
type Processor struct {
	Config *env.Config

	PartyID    int
	NumParties int

	Regs RegisterFile

	ArithField field.Field
	BinField   field.Field

	ArithAlphaI field.Element
	BinAlphaI   field.Element

	ArithCtx *ext.Context
	BinCtx   *ext.Context

	arithOpener *opener
	binOpener   *opener

	word64Size int

	in *inputFiles
}

// Params bundles the construction-time parameters of the backend init
// call: (party_id, num_parties, field_tag, hint_open, hint_mult,
// hint_bits), plus the field factories backing each register bank.
type Params struct {
	PartyID    int
	NumParties int
	FieldTag   string
	HintOpen   int
	HintMult   int
	HintBits   int

	ArithField field.Field
	BinField   field.Field

	// ArithAlphaI and BinAlphaI are this party's additive share of the
	// global classic-SPDZ MAC key alpha, one per register bank, used
	// by the ldsi and addm constant-injection opcodes.
	ArithAlphaI field.Element
	BinAlphaI   field.Element

	ArithBackend ext.Backend
	BinBackend   ext.Backend
}

// NewProcessor opens the four per-party input files (fatal if any is
// missing), initializes the two extension contexts, and computes
// word64_size for the arithmetic field
// construction sequence.
func NewProcessor(config *env.Config, p Params) (*Processor, error) {
	in, err := openInputFiles(p.PartyID)
	if err != nil {
		return nil, err
	}

	arithCtx := ext.NewContext("arithmetic", p.ArithBackend)
	if err := arithCtx.Init(p.PartyID, p.NumParties, p.FieldTag, p.HintOpen, p.HintMult, p.HintBits); err != nil {
		in.close()
		return nil, NewError(ErrBackendLoadFailure, "arith.init", err)
	}
	binCtx := ext.NewContext("binary", p.BinBackend)
	if err := binCtx.Init(p.PartyID, p.NumParties, p.FieldTag, p.HintOpen, p.HintMult, p.HintBits); err != nil {
		arithCtx.Term()
		in.close()
		return nil, NewError(ErrBackendLoadFailure, "binary.init", err)
	}

	arithAlphaI := p.ArithAlphaI
	if arithAlphaI == nil {
		arithAlphaI = p.ArithField.Zero()
	}
	binAlphaI := p.BinAlphaI
	if binAlphaI == nil {
		binAlphaI = p.BinField.Zero()
	}

	proc := &Processor{
		Config:      config,
		PartyID:     p.PartyID,
		NumParties:  p.NumParties,
		ArithField:  p.ArithField,
		BinField:    p.BinField,
		ArithAlphaI: arithAlphaI,
		BinAlphaI:   binAlphaI,
		ArithCtx:    arithCtx,
		BinCtx:      binCtx,
		word64Size:  field.WordSize(p.ArithField.Bits()),
		in:          in,
	}
	proc.arithOpener = newOpener(arithCtx, p.ArithField, ringMDSize(p.ArithField))
	proc.binOpener = newOpener(binCtx, p.BinField, bitMDSize)
	proc.Regs.ArithField = p.ArithField
	proc.Regs.BinField = p.BinField
	return proc, nil
}

// WordSize64 returns the per-element 8-byte word stride for the
// arithmetic field, as used to size extension byte buffers.
func (p *Processor) WordSize64() int {
	return p.word64Size
}

// Close tears the processor down in a fixed order: clear scratch
// registers, close input files, terminate both extension contexts,
// then report telemetry via the configured logger.
func (p *Processor) Close() error {
	p.Regs.Reset(Sizes{})
	p.in.close()

	var firstErr error
	if err := p.ArithCtx.Term(); err != nil && firstErr == nil {
		firstErr = NewError(ErrBackendCallFailure, "arith.term", err)
	}
	if err := p.BinCtx.Term(); err != nil && firstErr == nil {
		firstErr = NewError(ErrBackendCallFailure, "binary.term", err)
	}

	sent := p.arithOpener.sent + p.binOpener.sent
	rounds := p.arithOpener.rounds + p.binOpener.rounds
	p.Config.GetLogger().Printf("Sent %d elements in %d rounds", sent, rounds)

	return firstErr
}

//
// main.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Command spdzrun loads a bytecode program, wires up the configured
// extension backend, and runs it for one party.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/machine"
	"github.com/spdzgo/runtime/processor"
	"github.com/spdzgo/runtime/program"

	"github.com/spdzgo/runtime/env"
)

func main() {
	partyID := flag.Int("p", 0, "this party's id")
	numParties := flag.Int("n", 2, "number of parties")
	fieldTag := flag.String("field", "ring64", "arithmetic field tag, e.g. ring64 or modp:<hex modulus>")
	hintOpen := flag.Int("hint-open", 128, "expected batch size for opens")
	hintMult := flag.Int("hint-mult", 128, "expected batch size for multiplies")
	hintBits := flag.Int("hint-bits", 128, "expected batch size for skew/bit ops")
	extLibEnv := flag.String("ext-lib-env", "", "environment variable naming the extension backend (default SPDZ_EXT_LIB)")
	verbose := flag.Bool("v", false, "verbose diagnostics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: spdzrun [flags] program.asm")
		os.Exit(2)
	}

	if err := run(*partyID, *numParties, *fieldTag, *hintOpen, *hintMult, *hintBits, *extLibEnv, *verbose, flag.Arg(0)); err != nil {
		var perr *processor.Error
		if errors.As(err, &perr) && perr.Fatal() {
			log.Fatalf("fatal: %v", err)
		}
		log.Fatal(err)
	}
}

func run(partyID, numParties int, fieldTag string, hintOpen, hintMult, hintBits int, extLibEnv string, verbose bool, path string) error {
	config := &env.Config{Verbose: verbose}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	prog, err := program.Parse(f)
	if err != nil {
		return fmt.Errorf("spdzrun: %w", err)
	}

	arithField, err := parseFieldTag(fieldTag)
	if err != nil {
		return fmt.Errorf("spdzrun: %w", err)
	}
	binField := field.NewBit()

	backend, err := ext.LoadFromEnv(extLibEnv)
	if err != nil {
		return processor.NewError(processor.ErrBackendLoadFailure, "load_backend", err)
	}

	proc, err := processor.NewProcessor(config, processor.Params{
		PartyID:      partyID,
		NumParties:   numParties,
		FieldTag:     fieldTag,
		HintOpen:     hintOpen,
		HintMult:     hintMult,
		HintBits:     hintBits,
		ArithField:   arithField,
		BinField:     binField,
		ArithBackend: backend,
		BinBackend:   backend,
	})
	if err != nil {
		return err
	}

	exec := program.NewExec(proc, processor.NewSockets(), nil)

	m := machine.New(config, []*machine.Worker{
		{
			ThreadNum: partyID,
			Proc:      proc,
			Run: func(p *processor.Processor) error {
				return exec.Run(prog)
			},
		},
	})

	runErr := m.Run()
	closeErr := m.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// parseFieldTag resolves a field tag string to its field.Field: either
// "ringN" for the N-bit native ring or "modp:<hex>" for a prime field
// with the given hex modulus.
func parseFieldTag(tag string) (field.Field, error) {
	if strings.HasPrefix(tag, "ring") {
		bits, err := strconv.Atoi(strings.TrimPrefix(tag, "ring"))
		if err != nil {
			return nil, fmt.Errorf("invalid ring field tag %q: %w", tag, err)
		}
		return field.NewRing(bits)
	}
	if strings.HasPrefix(tag, "modp:") {
		hexDigits := strings.TrimPrefix(tag, "modp:")
		p, ok := new(big.Int).SetString(hexDigits, 16)
		if !ok {
			return nil, fmt.Errorf("invalid modp field tag %q", tag)
		}
		return field.NewModular(p)
	}
	return nil, fmt.Errorf("unknown field tag %q", tag)
}

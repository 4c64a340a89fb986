//
// asm.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package program

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spdzgo/runtime/processor"
)

// headerFields lists the recognized header keys in canonical order,
// the order Format writes them back out in.
var headerFields = []string{"np", "nsp", "n2", "ns2", "ni"}

// Parse reads the line-oriented assembler text format: an optional
// header block of "key value" size declarations, a blank line, then
// one instruction per remaining non-blank, non-comment line as
// "mnemonic arg0 arg1 ...". Lines starting with '#' are comments.
func Parse(r io.Reader) (*Program, error) {
	scanner := bufio.NewScanner(r)
	p := &Program{}
	inHeader := true
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			inHeader = false
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if inHeader {
			if ok, err := parseHeaderField(&p.Sizes, fields); err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			} else if ok {
				continue
			}
			inHeader = false
		}

		inst, err := parseInstruction(fields)
		if err != nil {
			return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
		}
		p.Instructions = append(p.Instructions, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseHeaderField(sizes *processor.Sizes, fields []string) (bool, error) {
	if len(fields) != 2 {
		return false, nil
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return false, nil
	}
	known := false
	for _, name := range headerFields {
		if fields[0] == name {
			known = true
			break
		}
	}
	if !known {
		return false, nil
	}
	switch fields[0] {
	case "np":
		sizes.Np = v
	case "nsp":
		sizes.Nsp = v
	case "n2":
		sizes.N2 = v
	case "ns2":
		sizes.Ns2 = v
	case "ni":
		sizes.Ni = v
	}
	return true, nil
}

func parseInstruction(fields []string) (Instruction, error) {
	op, err := ParseOpcode(fields[0])
	if err != nil {
		return Instruction{}, err
	}
	args := make([]int64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return Instruction{}, fmt.Errorf("argument %d (%q): %w", i, f, err)
		}
		args[i] = v
	}
	return Instruction{Op: op, Args: args}, nil
}

// Format renders a Program back into the assembler text format Parse
// accepts, the inverse transformation.
func Format(w io.Writer, p *Program) error {
	if _, err := fmt.Fprintf(w, "np %d\nnsp %d\nn2 %d\nns2 %d\nni %d\n\n",
		p.Sizes.Np, p.Sizes.Nsp, p.Sizes.N2, p.Sizes.Ns2, p.Sizes.Ni); err != nil {
		return err
	}
	for _, inst := range p.Instructions {
		if _, err := fmt.Fprint(w, inst.Op.String()); err != nil {
			return err
		}
		for _, a := range inst.Args {
			if _, err := fmt.Fprintf(w, " %d", a); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

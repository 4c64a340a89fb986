//
// asm_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package program

import (
	"bytes"
	"strings"
	"testing"
)

const sample = `np 2
nsp 3
n2 0
ns2 0
ni 1

# load a constant and open it
ldi 0 42
ldsi 0 42
popen_start 0
popen_stop 0
`

func TestParseReadsHeaderAndInstructions(t *testing.T) {
	p, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if p.Sizes.Np != 2 || p.Sizes.Nsp != 3 || p.Sizes.Ni != 1 {
		t.Fatalf("unexpected sizes: %+v", p.Sizes)
	}
	if len(p.Instructions) != 4 {
		t.Fatalf("expected 4 instructions, got %d", len(p.Instructions))
	}
	if p.Instructions[0].Op != OpLdi || p.Instructions[0].Args[1] != 42 {
		t.Fatalf("unexpected first instruction: %+v", p.Instructions[0])
	}
	if p.Instructions[2].Op != OpPOpenStart {
		t.Fatalf("expected popen_start, got %v", p.Instructions[2].Op)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	p, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Format(&buf, p); err != nil {
		t.Fatal(err)
	}

	p2, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(p2.Instructions) != len(p.Instructions) {
		t.Fatalf("round trip lost instructions: %d != %d", len(p2.Instructions), len(p.Instructions))
	}
	for i := range p.Instructions {
		if p.Instructions[i].Op != p2.Instructions[i].Op {
			t.Fatalf("instruction %d op mismatch: %v != %v", i, p.Instructions[i].Op, p2.Instructions[i].Op)
		}
	}
}

func TestParseRejectsUnknownOpcode(t *testing.T) {
	_, err := Parse(strings.NewReader("np 0\nnsp 0\nn2 0\nns2 0\nni 0\n\nbogus_op 1 2\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
}

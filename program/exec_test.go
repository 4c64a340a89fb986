//
// exec_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package program

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/processor"
)

func withInputFiles(t *testing.T, partyID int) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"integers_input", "fixes_input", "bits_input", "shares_input"} {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.txt", name, partyID))
		if err := os.WriteFile(path, []byte("1\n2\n3\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func newTestProcessor(t *testing.T) *processor.Processor {
	t.Helper()
	withInputFiles(t, 0)
	ring, err := field.NewRing(64)
	if err != nil {
		t.Fatal(err)
	}
	bit := field.NewBit()
	proc, err := processor.NewProcessor(&env.Config{}, processor.Params{
		PartyID:      0,
		NumParties:   1,
		FieldTag:     "ring64",
		HintOpen:     8,
		HintMult:     8,
		HintBits:     8,
		ArithField:   ring,
		BinField:     bit,
		ArithBackend: ext.NewStubBackend(),
		BinBackend:   ext.NewStubBackend(),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { proc.Close() })
	return proc
}

func TestExecRunsArithmeticAndOpenProgram(t *testing.T) {
	proc := newTestProcessor(t)
	e := NewExec(proc, nil, nil)

	src := `np 2
nsp 1
n2 0
ns2 0
ni 0

ldi 0 3
ldi 1 4
addc 1 0 1
ldsi 0 7
popen_start 0
popen_stop 1
`
	prog, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(prog); err != nil {
		t.Fatal(err)
	}

	got, err := proc.Regs.ClearP(1)
	if err != nil {
		t.Fatal(err)
	}
	want := proc.ArithField.FromUint64(7)
	if !got.Equal(want) {
		t.Fatalf("Cp[1] = %v, want %v", got, want)
	}
}

func TestExecRejectsUnknownStore(t *testing.T) {
	proc := newTestProcessor(t)
	e := NewExec(proc, nil, nil)

	prog := &Program{
		Sizes: processor.Sizes{Nsp: 1},
		Instructions: []Instruction{
			{Op: OpWriteSharesToFile, Args: []int64{0, 0}},
		},
	}
	if err := e.Run(prog); err == nil {
		t.Fatal("expected an error for an unregistered store id")
	}
}

//
// processor_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/share"
)

// withInputFiles creates the four per-party input files a Processor
// expects to find (integers, fixes, bits, shares) in a fresh temp
// directory, chdirs into it for the duration of the test, and restores
// the original working directory afterward.
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

func newTestParams() Params {
	ring, _ := field.NewRing(64)
	bit := field.NewBit()
	return Params{
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
	}
}

func TestNewProcessorFatalWhenInputFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(wd)

	_, err := NewProcessor(&env.Config{}, newTestParams())
	if err == nil {
		t.Fatal("expected error when input files are missing")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrInputFileMissing || !perr.Fatal() {
		t.Fatalf("expected fatal InputFileMissing, got %v", err)
	}
}

func TestNewProcessorOpensAndClosesCleanly(t *testing.T) {
	withInputFiles(t, 0)

	var buf bytes.Buffer
	config := &env.Config{Logger: log.New(&buf, "", 0)}

	proc, err := NewProcessor(config, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	if proc.WordSize64() == 0 {
		t.Fatal("expected a nonzero word64_size")
	}
	if err := proc.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected teardown to emit a telemetry line")
	}
}

func TestOpenerOddOperandCountIsFatal(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	zero := proc.ArithField.Zero()
	s := share.Share{A: zero, Mac: zero}
	_, err = proc.arithOpener.Mult([]share.Share{s, s, s})
	if err == nil {
		t.Fatal("expected an error for an odd number of multiply operands")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrOddOperandCount || !perr.Fatal() {
		t.Fatalf("expected fatal OddOperandCount, got %v", err)
	}
}

func TestOpenerOpenRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	v := proc.ArithField.FromUint64(5)
	s := share.Share{A: v, Mac: v}
	out, err := proc.arithOpener.Open([]share.Share{s})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one opened value, got %d", len(out))
	}
}

//
// ext_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package ext

import "testing"

func newTestContext(t *testing.T) *Context {
	ctx := NewContext("arithmetic", NewStubBackend())
	if err := ctx.Init(0, 3, "modp", 8, 8, 8); err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestStartStopOpenRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Term()

	// One packed share A||Mac of 4 bytes each, with A == 5. Opening
	// narrows it to a single 4-byte clear holding the incremented A.
	in := Share{Size: 8, Count: 1, Data: []byte{0, 0, 0, 5, 0, 0, 0, 5}}
	if err := ctx.StartOpen(in); err != nil {
		t.Fatal(err)
	}
	out, err := ctx.StopOpen()
	if err != nil {
		t.Fatal(err)
	}
	if out.Data[3] != 6 {
		t.Fatalf("expected incremented value 6, got %d", out.Data[3])
	}
}

func TestStopWithoutStartIsError(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Term()

	if _, err := ctx.StopOpen(); err == nil {
		t.Fatal("expected error calling StopOpen without a preceding StartOpen")
	}
}

func TestDoubleStartIsError(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Term()

	in := Share{Size: 8, Count: 1, Data: make([]byte, 8)}
	if err := ctx.StartOpen(in); err != nil {
		t.Fatal(err)
	}
	if err := ctx.StartOpen(in); err == nil {
		t.Fatal("expected error on second StartOpen without an intervening StopOpen")
	}
}

func TestSkewBitDecomposition(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Term()

	// A single ring share of 0x05. The stub backend is
	// identity-with-increment rather than a faithful bit decomposition,
	// so we only assert the buffer-shape contract here.
	in := Share{Size: 8, Count: 1, MDRingSize: 64, Data: []byte{0, 0, 0, 0, 0, 0, 0, 5}}
	out, err := ctx.Backend.SkewBitDecomp(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != in.Count || out.Size != in.Size {
		t.Fatalf("skew decomposition changed buffer shape: %+v -> %+v", in, out)
	}
}

func TestBufferValidateRejectsSizeMismatch(t *testing.T) {
	b := Buffer{Size: 8, Count: 2, Data: make([]byte, 10)}
	if err := b.Validate(); err == nil {
		t.Fatal("expected Validate to reject a length mismatch")
	}
}

func TestVerifyFinalSucceeds(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Term()

	if err := ctx.Backend.VerifyFinal(ctx); err != nil {
		t.Fatalf("VerifyFinal should succeed: %v", err)
	}
}

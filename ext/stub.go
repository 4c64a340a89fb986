//
// stub.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package ext

import (
	"fmt"
	"math/big"
)

// StubBackend is a reference, in-process Backend used for smoke
// testing the Processor without a real protocol implementation. It
// mirrors spdz_nec_ext_stub's reference behavior: most operations
// "increment" each element (treated as a big-endian big.Int) by one,
// and start_mult performs a genuine product. Unlike the reference
// stub, VerifyFinal/VerifyOptionalSuggest report success (error == 0):
// an always-error=1 behavior would make every program using it fail
// final verification, which is not useful as a self-contained Go
// smoke-test double.
type StubBackend struct {
	initialized bool
	pendingOpen Clear
	pendingMult Share
}

// NewStubBackend constructs a StubBackend. This is also the function
// a real extension shared object exports as NewBackend for ext.Load.
func NewStubBackend() Backend {
	return &StubBackend{}
}

func (s *StubBackend) Init(ctx *Context, partyID, numParties int, fieldTag string, hintOpen, hintMult, hintBits int) error {
	s.initialized = true
	return nil
}

func (s *StubBackend) Term(ctx *Context) error {
	s.initialized = false
	return nil
}

func incrementBuffer(in Buffer) Buffer {
	out := Buffer{Size: in.Size, Count: in.Count, MDRingSize: in.MDRingSize, Data: make([]byte, len(in.Data))}
	for i := 0; i < in.Count; i++ {
		chunk := in.Data[i*in.Size : (i+1)*in.Size]
		v := new(big.Int).SetBytes(chunk)
		v.Add(v, big.NewInt(1))
		dst := out.Data[i*out.Size : (i+1)*out.Size]
		writeBE(dst, v)
	}
	return out
}

// narrowToClear increments the A half of each packed share (the first
// in.Size/2 bytes of each element, discarding the Mac half) and packs
// the result as a one-word-per-element Clear. Open narrows a Share
// buffer to a Clear buffer; unlike a plain increment this also halves
// the per-element stride.
func narrowToClear(in Share) Clear {
	elemSize := in.Size / 2
	out := Clear{Size: elemSize, Count: in.Count, MDRingSize: in.MDRingSize, Data: make([]byte, elemSize*in.Count)}
	for i := 0; i < in.Count; i++ {
		a := in.Data[i*in.Size : i*in.Size+elemSize]
		v := new(big.Int).SetBytes(a)
		v.Add(v, big.NewInt(1))
		writeBE(out.Data[i*elemSize:(i+1)*elemSize], v)
	}
	return out
}

// widenToShare increments each clear element and packs the result as a
// Share buffer, duplicating the incremented value into both the A and
// Mac halves. Input widens a Clear buffer to a Share buffer; unlike a
// plain increment this also doubles the per-element stride.
func widenToShare(in Clear) Share {
	elemSize := in.Size
	out := Share{Size: 2 * elemSize, Count: in.Count, MDRingSize: in.MDRingSize, Data: make([]byte, 2*elemSize*in.Count)}
	for i := 0; i < in.Count; i++ {
		chunk := in.Data[i*elemSize : (i+1)*elemSize]
		v := new(big.Int).SetBytes(chunk)
		v.Add(v, big.NewInt(1))
		dst := out.Data[i*out.Size : (i+1)*out.Size]
		writeBE(dst[:elemSize], v)
		writeBE(dst[elemSize:], v)
	}
	return out
}

func writeBE(dst []byte, v *big.Int) {
	b := v.Bytes()
	if len(b) > len(dst) {
		b = b[len(b)-len(dst):]
	}
	copy(dst[len(dst)-len(b):], b)
}

func (s *StubBackend) InputParty(ctx *Context, sharingPartyID int, clearIn Clear) (Share, error) {
	return widenToShare(clearIn), nil
}

func (s *StubBackend) InputShare(ctx *Context, clearIn Clear) (Share, error) {
	return widenToShare(clearIn), nil
}

func (s *StubBackend) MakeInputFromIntegers(ctx *Context, ints []uint64) (Clear, error) {
	size := 8
	out := Clear{Size: size, Count: len(ints), Data: make([]byte, size*len(ints))}
	for i, v := range ints {
		writeBE(out.Data[i*size:(i+1)*size], new(big.Int).SetUint64(v))
	}
	return out, nil
}

func (s *StubBackend) MakeInputFromFixed(ctx *Context, strs []string) (Clear, error) {
	ints := make([]uint64, len(strs))
	for i, str := range strs {
		var v uint64
		_, err := fmt.Sscanf(str, "%d", &v)
		if err != nil {
			return Clear{}, fmt.Errorf("ext: stub: invalid fixed literal %q: %w", str, err)
		}
		ints[i] = v
	}
	return s.MakeInputFromIntegers(ctx, ints)
}

func (s *StubBackend) StartOpen(ctx *Context, sharesIn Share) error {
	ctx.handle = uint64(len(sharesIn.Data))
	s.pendingOpen = narrowToClear(sharesIn)
	return nil
}

func (s *StubBackend) StopOpen(ctx *Context) (Clear, error) {
	return s.pendingOpen, nil
}

func (s *StubBackend) StartMult(ctx *Context, factor1, factor2 Share) error {
	if factor1.Count != factor2.Count || factor1.Size != factor2.Size {
		return fmt.Errorf("ext: stub: mismatched mult operands")
	}
	out := Share{Size: factor1.Size, Count: factor1.Count, Data: make([]byte, len(factor1.Data))}
	for i := 0; i < factor1.Count; i++ {
		v1 := new(big.Int).SetBytes(factor1.Data[i*factor1.Size : (i+1)*factor1.Size])
		v2 := new(big.Int).SetBytes(factor2.Data[i*factor2.Size : (i+1)*factor2.Size])
		p := new(big.Int).Mul(v1, v2)
		writeBE(out.Data[i*out.Size:(i+1)*out.Size], p)
	}
	s.pendingMult = out
	return nil
}

func (s *StubBackend) StopMult(ctx *Context) (Share, error) {
	return s.pendingMult, nil
}

func (s *StubBackend) SkewBitDecomp(ctx *Context, ringsIn Share) (Share, error) {
	return incrementBuffer(ringsIn), nil
}

func (s *StubBackend) SkewRingComp(ctx *Context, bitsIn Share) (Share, error) {
	return incrementBuffer(bitsIn), nil
}

func (s *StubBackend) MakeIntegerOutput(ctx *Context, shareIn Share) ([]uint64, error) {
	out := make([]uint64, shareIn.Count)
	for i := 0; i < shareIn.Count; i++ {
		v := new(big.Int).SetBytes(shareIn.Data[i*shareIn.Size : (i+1)*shareIn.Size])
		out[i] = v.Uint64()
	}
	return out, nil
}

func (s *StubBackend) MakeFixedOutput(ctx *Context, shareIn Share) ([]string, error) {
	ints, err := s.MakeIntegerOutput(ctx, shareIn)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ints))
	for i, v := range ints {
		out[i] = fmt.Sprintf("%d", v)
	}
	return out, nil
}

func (s *StubBackend) VerifyOptionalSuggest(ctx *Context) (bool, error) {
	return false, nil
}

func (s *StubBackend) VerifyFinal(ctx *Context) error {
	return nil
}

//
// marshal.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"fmt"

	"github.com/spdzgo/runtime/ext"
	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/share"
)

// marshalShares packs a share vector into a contiguous extension
// buffer: each element occupies two field.Size() byte words, A then
// Mac back-to-back. mdRingSize is the per-element ring/bit metadata
// the extension buffer header carries (8*sizeof(ring_word) for ring
// operands, 1 for bit operands).
func marshalShares(shares []share.Share, f field.Field, mdRingSize int) ext.Buffer {
	elemSize := f.Size()
	data := make([]byte, 0, 2*elemSize*len(shares))
	for _, s := range shares {
		data = s.A.Pack(data)
		data = s.Mac.Pack(data)
	}
	return ext.Buffer{Data: data, Size: 2 * elemSize, Count: len(shares), MDRingSize: mdRingSize}
}

// unmarshalShares is the inverse of marshalShares.
func unmarshalShares(buf ext.Buffer, f field.Field) ([]share.Share, error) {
	elemSize := f.Size()
	if buf.Size != 2*elemSize {
		return nil, fmt.Errorf("processor: share buffer element size %d != expected %d", buf.Size, 2*elemSize)
	}
	out := make([]share.Share, buf.Count)
	for i := 0; i < buf.Count; i++ {
		chunk := buf.Data[i*buf.Size : (i+1)*buf.Size]
		a, rest, err := f.Unpack(chunk)
		if err != nil {
			return nil, fmt.Errorf("processor: unmarshal share[%d].A: %w", i, err)
		}
		mac, _, err := f.Unpack(rest)
		if err != nil {
			return nil, fmt.Errorf("processor: unmarshal share[%d].Mac: %w", i, err)
		}
		out[i] = share.Share{A: a, Mac: mac}
	}
	return out, nil
}

// marshalClears packs a clear vector into a one-word-per-element
// extension buffer.
func marshalClears(elems []field.Element, f field.Field, mdRingSize int) ext.Buffer {
	elemSize := f.Size()
	data := make([]byte, 0, elemSize*len(elems))
	for _, e := range elems {
		data = e.Pack(data)
	}
	return ext.Buffer{Data: data, Size: elemSize, Count: len(elems), MDRingSize: mdRingSize}
}

// unmarshalClears is the inverse of marshalClears.
func unmarshalClears(buf ext.Buffer, f field.Field) ([]field.Element, error) {
	elemSize := f.Size()
	if buf.Size != elemSize {
		return nil, fmt.Errorf("processor: clear buffer element size %d != expected %d", buf.Size, elemSize)
	}
	out := make([]field.Element, buf.Count)
	for i := 0; i < buf.Count; i++ {
		chunk := buf.Data[i*buf.Size : (i+1)*buf.Size]
		e, _, err := f.Unpack(chunk)
		if err != nil {
			return nil, fmt.Errorf("processor: unmarshal clear[%d]: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

// ringMDSize returns the md_ring_size metadata for ring-typed operands
// of the given field: 8*sizeof(ring_word), i.e. the field's own bit
// width
func ringMDSize(f field.Field) int {
	return f.Bits()
}

// bitMDSize is the md_ring_size metadata for bit-typed operands.
const bitMDSize = 1

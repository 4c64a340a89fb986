//
// octetstream.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.
//

// Package octetstream implements a byte-oriented append/consume buffer,
// the encoding substrate for both network and disk representations of
// field elements and authenticated shares.
package octetstream

import (
	"encoding/binary"
	"fmt"

	"github.com/spdzgo/runtime/field"
)

// Stream is a growable write buffer paired with a read cursor, in the
// spirit of the prior design's p2p.Conn buffer bookkeeping but detached
// from any network or file connection.
type Stream struct {
	buf []byte
	pos int
}

// New creates an empty Stream ready for writing.
func New() *Stream {
	return &Stream{}
}

// Wrap creates a Stream for reading the given bytes.
func Wrap(data []byte) *Stream {
	return &Stream{buf: data}
}

// Bytes returns the stream's full backing buffer.
func (s *Stream) Bytes() []byte { return s.buf }

// Len returns the number of unread bytes remaining.
func (s *Stream) Len() int { return len(s.buf) - s.pos }

// Reset clears the stream for reuse as an empty write buffer.
func (s *Stream) Reset() {
	s.buf = s.buf[:0]
	s.pos = 0
}

// PutByte appends a single byte.
func (s *Stream) PutByte(b byte) { s.buf = append(s.buf, b) }

// PutUint32 appends a big-endian uint32, matching the 4-byte
// message_type tag used on the client connection's wire protocol.
func (s *Stream) PutUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	s.buf = append(s.buf, tmp[:]...)
}

// PutUint64 appends a big-endian uint64.
func (s *Stream) PutUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	s.buf = append(s.buf, tmp[:]...)
}

// PutBytes appends a length-prefixed byte string.
func (s *Stream) PutBytes(b []byte) {
	s.PutUint32(uint32(len(b)))
	s.buf = append(s.buf, b...)
}

// PutElement appends the canonical packed encoding of a field element.
func (s *Stream) PutElement(e field.Element) {
	s.buf = e.Pack(s.buf)
}

// GetByte consumes a single byte.
func (s *Stream) GetByte() (byte, error) {
	if s.Len() < 1 {
		return 0, fmt.Errorf("octetstream: short buffer reading byte")
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// GetUint32 consumes a big-endian uint32.
func (s *Stream) GetUint32() (uint32, error) {
	if s.Len() < 4 {
		return 0, fmt.Errorf("octetstream: short buffer reading uint32")
	}
	v := binary.BigEndian.Uint32(s.buf[s.pos : s.pos+4])
	s.pos += 4
	return v, nil
}

// GetUint64 consumes a big-endian uint64.
func (s *Stream) GetUint64() (uint64, error) {
	if s.Len() < 8 {
		return 0, fmt.Errorf("octetstream: short buffer reading uint64")
	}
	v := binary.BigEndian.Uint64(s.buf[s.pos : s.pos+8])
	s.pos += 8
	return v, nil
}

// GetBytes consumes a length-prefixed byte string.
func (s *Stream) GetBytes() ([]byte, error) {
	n, err := s.GetUint32()
	if err != nil {
		return nil, err
	}
	if uint32(s.Len()) < n {
		return nil, fmt.Errorf("octetstream: short buffer reading %d bytes", n)
	}
	b := make([]byte, n)
	copy(b, s.buf[s.pos:s.pos+int(n)])
	s.pos += int(n)
	return b, nil
}

// GetElement consumes one field element, using f as the decoding
// factory (it determines element size and kind).
func (s *Stream) GetElement(f field.Field) (field.Element, error) {
	e, rest, err := f.Unpack(s.buf[s.pos:])
	if err != nil {
		return nil, err
	}
	s.pos = len(s.buf) - len(rest)
	return e, nil
}

// Consume returns and advances past the next n raw bytes, the
// equivalent of the original's octetStream::consume used by gfp::add.
func (s *Stream) Consume(n int) ([]byte, error) {
	if s.Len() < n {
		return nil, fmt.Errorf("octetstream: short buffer consuming %d bytes", n)
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

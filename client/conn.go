//
// conn.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package client

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 256 * 1024
)

// IOStats tracks bytes sent/received/flushed on a Conn, the same shape
// p2p.Conn reports for inter-party traffic.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a zeroed IOStats.
func NewIOStats() IOStats {
	return IOStats{Sent: new(atomic.Uint64), Recvd: new(atomic.Uint64), Flushed: new(atomic.Uint64)}
}

// Conn is a buffered socket to one external client, carrying the
// connection FSM, the optional STS session keys, and the async
// flushing writer the engine's inter-party transport uses.
type Conn struct {
	conn      io.ReadWriter
	WriteBuf  []byte
	WritePos  int
	ReadBuf   []byte
	ReadStart int
	ReadEnd   int
	Stats     IOStats

	fromWriter chan []byte
	toWriter   chan []byte
	writerErr  error

	State State

	// sessionKey is a plain symmetric key installed without a
	// sequence handshake: every message is sealed under a fresh random
	// nonce "session symmetric key" case.
	sessionKey *[32]byte

	// sts holds the derived send/receive keys and sequence counters
	// once the STS handshake completes.
	sts *Keys
}

// NewConn wraps the already-connected conn for socket I/O, initially
// CONNECTED.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:       conn,
		ReadBuf:    make([]byte, readBufSize),
		fromWriter: make(chan []byte, numBuffers),
		toWriter:   make(chan []byte, numBuffers),
		Stats:      NewIOStats(),
		State:      StateConnected,
	}
	go c.writer()
	c.WriteBuf = <-c.fromWriter
	return c
}

func (c *Conn) writer() {
	for i := 0; i < numBuffers; i++ {
		c.fromWriter <- make([]byte, writeBufSize)
	}
	for buf := range c.toWriter {
		if _, err := c.conn.Write(buf); err != nil {
			c.writerErr = err
		}
		c.fromWriter <- buf[0:cap(buf)]
	}
	close(c.fromWriter)
}

// Flush flushes any pending data to the connection.
func (c *Conn) Flush() error {
	if c.WritePos > 0 {
		c.Stats.Sent.Add(uint64(c.WritePos))
		c.toWriter <- c.WriteBuf[0:c.WritePos]
		next := <-c.fromWriter
		if c.writerErr != nil {
			return c.writerErr
		}
		c.WriteBuf = next
		c.WritePos = 0
		c.Stats.Flushed.Add(1)
	}
	return nil
}

// Fill ensures at least n unread bytes are buffered.
func (c *Conn) Fill(n int) error {
	if c.ReadStart < c.ReadEnd {
		copy(c.ReadBuf[0:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadEnd -= c.ReadStart
		c.ReadStart = 0
	} else {
		c.ReadStart = 0
		c.ReadEnd = 0
	}
	for c.ReadEnd < n {
		got, err := c.conn.Read(c.ReadBuf[c.ReadEnd:])
		if err != nil {
			return err
		}
		c.Stats.Recvd.Add(uint64(got))
		c.ReadEnd += got
	}
	return nil
}

// Close flushes pending output and closes the underlying connection.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	close(c.toWriter)
	for range c.fromWriter {
	}
	if c.writerErr != nil {
		return c.writerErr
	}
	if closer, ok := c.conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SendRaw writes len(b) unframed bytes.
func (c *Conn) SendRaw(b []byte) error {
	for len(b) > 0 {
		if c.WritePos >= len(c.WriteBuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.WriteBuf[c.WritePos:], b)
		c.WritePos += n
		b = b[n:]
	}
	return nil
}

// SendUint32 sends a 4-byte big-endian message-type tag.
func (c *Conn) SendUint32(val uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], val)
	return c.SendRaw(buf[:])
}

// ReceiveRaw reads exactly n unframed bytes.
func (c *Conn) ReceiveRaw(n int) ([]byte, error) {
	if c.ReadStart+n > c.ReadEnd {
		if err := c.Fill(n); err != nil {
			return nil, err
		}
	}
	out := make([]byte, n)
	copy(out, c.ReadBuf[c.ReadStart:c.ReadStart+n])
	c.ReadStart += n
	return out, nil
}

// ReceiveUint32 reads a 4-byte big-endian value.
func (c *Conn) ReceiveUint32() (uint32, error) {
	b, err := c.ReceiveRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// InstallSessionKey installs a plain symmetric session key for the case
// where the client negotiated a session key out of band rather than
// through the STS handshake: subsequent messages are sealed under a
// fresh random nonce rather than a tracked sequence counter.
func (c *Conn) InstallSessionKey(key [32]byte) {
	c.sessionKey = &key
}

// InstallSTSKeys installs the derived send/receive keys from a
// completed STS handshake and resets both sequence counters to zero,
// transitioning the connection to STS-KEYED.
func (c *Conn) InstallSTSKeys(keys *Keys) {
	keys.SendSeq = 0
	keys.RecvSeq = 0
	c.sts = keys
	c.State = StateSTSKeyed
}

// SendMessage frames and sends one socket-I/O payload: if msgType is
// nonzero, a 4-byte tag precedes the body. The body is sealed under
// the STS send key (sequence nonce) if installed, else under the
// session key (random nonce) if installed, else sent in cleartext.
func (c *Conn) SendMessage(msgType uint32, body []byte) error {
	if msgType != 0 {
		if err := c.SendUint32(msgType); err != nil {
			return err
		}
	}
	payload, err := c.seal(body)
	if err != nil {
		return err
	}
	if err := c.SendUint32(uint32(len(payload))); err != nil {
		return err
	}
	return c.SendRaw(payload)
}

// ReceiveMessage is the inverse of SendMessage.
func (c *Conn) ReceiveMessage(msgType uint32) ([]byte, error) {
	if msgType != 0 {
		tag, err := c.ReceiveUint32()
		if err != nil {
			return nil, err
		}
		if tag != msgType {
			return nil, fmt.Errorf("client: unexpected message type %d, want %d", tag, msgType)
		}
	}
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	payload, err := c.ReceiveRaw(int(n))
	if err != nil {
		return nil, err
	}
	return c.open(payload)
}

func (c *Conn) seal(body []byte) ([]byte, error) {
	switch {
	case c.sts != nil:
		nonce := sequenceNonce(c.sts.SendSeq)
		c.sts.SendSeq++
		return secretbox.Seal(nil, body, &nonce, &c.sts.SendKey), nil
	case c.sessionKey != nil:
		var nonce [24]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return nil, err
		}
		sealed := secretbox.Seal(nonce[:], body, &nonce, c.sessionKey)
		return sealed, nil
	default:
		return body, nil
	}
}

func (c *Conn) open(payload []byte) ([]byte, error) {
	switch {
	case c.sts != nil:
		nonce := sequenceNonce(c.sts.RecvSeq)
		c.sts.RecvSeq++
		out, ok := secretbox.Open(nil, payload, &nonce, &c.sts.RecvKey)
		if !ok {
			return nil, fmt.Errorf("client: secretbox open failed under STS key")
		}
		return out, nil
	case c.sessionKey != nil:
		if len(payload) < 24 {
			return nil, fmt.Errorf("client: message too short for session-key nonce")
		}
		var nonce [24]byte
		copy(nonce[:], payload[:24])
		out, ok := secretbox.Open(nil, payload[24:], &nonce, c.sessionKey)
		if !ok {
			return nil, fmt.Errorf("client: secretbox open failed under session key")
		}
		return out, nil
	default:
		return payload, nil
	}
}

// sequenceNonce widens a 64-bit sequence counter into the 24-byte
// secretbox nonce, big-endian in the low 8 bytes and zero elsewhere.
// Both peers track the counter independently per direction.
func sequenceNonce(seq uint64) [24]byte {
	var nonce [24]byte
	binary.BigEndian.PutUint64(nonce[16:], seq)
	return nonce
}

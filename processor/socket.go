//
// socket.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"fmt"

	"github.com/spdzgo/runtime/client"
	"github.com/spdzgo/runtime/octetstream"
	"github.com/spdzgo/runtime/share"
)

// RegType distinguishes secret and clear register operands for socket
// I/O write_socket signature.
type RegType int

// Register types.
const (
	RegSecret RegType = iota
	RegClear
)

// Secrecy distinguishes the field/ring domain (MODP) from a plain
// 32-bit integer domain (INT) for clear operands.
type Secrecy int

// Secrecy domains.
const (
	SecrecyModp Secrecy = iota
	SecrecyInt
)

// Sockets is the Processor's table of connected external client
// sockets, keyed by the socket_id the bytecode names.
type Sockets struct {
	conns map[int]*client.Conn
}

// NewSockets creates an empty socket table.
func NewSockets() *Sockets {
	return &Sockets{conns: make(map[int]*client.Conn)}
}

// Register binds socketID to an already-connected client.Conn (the
// caller is responsible for running any STS handshake beforehand).
func (s *Sockets) Register(socketID int, conn *client.Conn) {
	s.conns[socketID] = conn
}

func (s *Sockets) get(socketID int) (*client.Conn, error) {
	conn, ok := s.conns[socketID]
	if !ok {
		return nil, NewError(ErrSocketUnconfigured, "socket",
			fmt.Errorf("socket %d is not registered", socketID))
	}
	return conn, nil
}

// WriteSocket implements write_socket: packs the named registers into
// one message and sends it over socketID. regType and secrecy select
// the per-register encoding; sendMacs additionally packs each secret
// share's MAC alongside its value share.
func (p *Processor) WriteSocket(sockets *Sockets, socketID int, msgType uint32, regType RegType, secrecy Secrecy, sendMacs bool, regs []int) error {
	conn, err := sockets.get(socketID)
	if err != nil {
		return err
	}

	os := octetstream.New()
	for _, reg := range regs {
		switch regType {
		case RegSecret:
			s, err := p.Regs.SecretP(reg)
			if err != nil {
				return err
			}
			os.PutElement(s.A)
			if sendMacs {
				os.PutElement(s.Mac)
			}
		case RegClear:
			switch secrecy {
			case SecrecyModp:
				c, err := p.Regs.ClearP(reg)
				if err != nil {
					return err
				}
				os.PutElement(c)
			case SecrecyInt:
				v, err := p.Regs.Int(reg)
				if err != nil {
					return err
				}
				os.PutUint32(uint32(v))
			default:
				return NewError(ErrBadOpcodeShape, "write_socket", fmt.Errorf("unknown secrecy %d", secrecy))
			}
		default:
			return NewError(ErrBadOpcodeShape, "write_socket", fmt.Errorf("unknown reg type %d", regType))
		}
	}

	if err := conn.SendMessage(msgType, os.Bytes()); err != nil {
		return NewError(ErrSocketIOFailed, "write_socket", err)
	}
	return conn.Flush()
}

// ReadSocketInts implements read_socket_ints: reads len(destRegs)
// 32-bit clear integers from socketID into Ci[destRegs[i]].
func (p *Processor) ReadSocketInts(sockets *Sockets, socketID int, msgType uint32, destRegs []int) error {
	conn, err := sockets.get(socketID)
	if err != nil {
		return err
	}
	body, err := conn.ReceiveMessage(msgType)
	if err != nil {
		return NewError(ErrSocketIOFailed, "read_socket_ints", err)
	}
	os := octetstream.Wrap(body)
	for _, reg := range destRegs {
		v, err := os.GetUint32()
		if err != nil {
			return NewError(ErrSocketIOFailed, "read_socket_ints", err)
		}
		if err := p.Regs.SetInt(reg, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSocketVector implements read_socket_vector: reads len(destRegs)
// clear field elements from socketID into Cp[destRegs[i]].
func (p *Processor) ReadSocketVector(sockets *Sockets, socketID int, msgType uint32, destRegs []int) error {
	conn, err := sockets.get(socketID)
	if err != nil {
		return err
	}
	body, err := conn.ReceiveMessage(msgType)
	if err != nil {
		return NewError(ErrSocketIOFailed, "read_socket_vector", err)
	}
	os := octetstream.Wrap(body)
	for _, reg := range destRegs {
		e, err := os.GetElement(p.ArithField)
		if err != nil {
			return NewError(ErrSocketIOFailed, "read_socket_vector", err)
		}
		if err := p.Regs.SetClearP(reg, e); err != nil {
			return err
		}
	}
	return nil
}

// ReadSocketPrivate implements read_socket_private: reads
// len(destRegs) secret field shares (value and, if expectMacs, MAC)
// from socketID into Sp[destRegs[i]].
func (p *Processor) ReadSocketPrivate(sockets *Sockets, socketID int, msgType uint32, expectMacs bool, destRegs []int) error {
	conn, err := sockets.get(socketID)
	if err != nil {
		return err
	}
	body, err := conn.ReceiveMessage(msgType)
	if err != nil {
		return NewError(ErrSocketIOFailed, "read_socket_private", err)
	}
	os := octetstream.Wrap(body)
	for _, reg := range destRegs {
		a, err := os.GetElement(p.ArithField)
		if err != nil {
			return NewError(ErrSocketIOFailed, "read_socket_private", err)
		}
		mac := p.ArithField.Zero()
		if expectMacs {
			mac, err = os.GetElement(p.ArithField)
			if err != nil {
				return NewError(ErrSocketIOFailed, "read_socket_private", err)
			}
		}
		if err := p.Regs.SetSecretP(reg, share.Share{A: a, Mac: mac}); err != nil {
			return err
		}
	}
	return nil
}

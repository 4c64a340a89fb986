//
// state.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package client implements the engine's external client socket
// surface: a buffered, async-writer connection in the prior design's p2p
// style, the Station-to-Station handshake used to derive per-session
// symmetric keys, and the framing used by the socket I/O opcodes.
package client

import "fmt"

// State is the per-client socket FSM: UNCONNECTED -> CONNECTED ->
// DH-KEYED -> STS-KEYED. Installing STS keys always resets both
// sequence counters to zero.
type State int

// Connection states.
const (
	StateUnconnected State = iota
	StateConnected
	StateDHKeyed
	StateSTSKeyed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "UNCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateDHKeyed:
		return "DH-KEYED"
	case StateSTSKeyed:
		return "STS-KEYED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

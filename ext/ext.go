//
// ext.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package ext defines the extension ABI, the protocol-engine boundary:
// a pluggable backend that implements a concrete MPC protocol
// (replicated 3-party over Z/2^n or Z/2, classical SPDZ with explicit
// MAC key alpha_i) behind a small, C-ABI-shaped interface.
package ext

import "fmt"

// Buffer is the {data, size, count, md_ring_size} descriptor shared by
// both share_t and clear_t. Size is the per-element byte size, Count
// the number of elements packed back-to-back in Data, and MDRingSize
// the "bits per element" metadata (8*sizeof(ring_word) for ring
// operands, 1 for bit operands).
type Buffer struct {
	Data       []byte
	Size       int
	Count      int
	MDRingSize int
}

// Share is an extension-side buffer of authenticated shares.
type Share = Buffer

// Clear is an extension-side buffer of clear values.
type Clear = Buffer

// Validate checks the size/count/md_ring_size invariants every backend
// call expects to hold before it runs: Data must be exactly Size*Count
// bytes, and none of the three dimensions may be negative.
func (b Buffer) Validate() error {
	if b.Size < 0 || b.Count < 0 || b.MDRingSize < 0 {
		return fmt.Errorf("ext: negative buffer dimension: %+v", b)
	}
	if len(b.Data) != b.Size*b.Count {
		return fmt.Errorf("ext: buffer length %d does not match size*count %d*%d",
			len(b.Data), b.Size, b.Count)
	}
	return nil
}

// Backend is the protocol plugin contract every extension implements.
// A non-nil error from any method is a fatal protocol error
// (BackendCallFailure): the engine reports it and aborts the process.
// The backend is not unloaded first.
type Backend interface {
	Init(ctx *Context, partyID, numParties int, fieldTag string, hintOpen, hintMult, hintBits int) error
	Term(ctx *Context) error

	InputParty(ctx *Context, sharingPartyID int, clearIn Clear) (Share, error)
	InputShare(ctx *Context, clearIn Clear) (Share, error)
	MakeInputFromIntegers(ctx *Context, ints []uint64) (Clear, error)
	MakeInputFromFixed(ctx *Context, strs []string) (Clear, error)

	StartOpen(ctx *Context, sharesIn Share) error
	StopOpen(ctx *Context) (Clear, error)

	StartMult(ctx *Context, factor1, factor2 Share) error
	StopMult(ctx *Context) (Share, error)

	SkewBitDecomp(ctx *Context, ringsIn Share) (Share, error)
	SkewRingComp(ctx *Context, bitsIn Share) (Share, error)

	MakeIntegerOutput(ctx *Context, shareIn Share) ([]uint64, error)
	MakeFixedOutput(ctx *Context, shareIn Share) ([]string, error)

	VerifyOptionalSuggest(ctx *Context) (bool, error)
	VerifyFinal(ctx *Context) error
}

// BatchState is the per-batch FSM state: IDLE -> STARTED -> STOPPED ->
// IDLE. Only *Start may fire in IDLE; only *Stop in STARTED.
type BatchState int

// Batch states.
const (
	StateIdle BatchState = iota
	StateStarted
	StateStopped
)

func (s BatchState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarted:
		return "STARTED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Context is one of the two parallel extension contexts a Processor
// drives, arithmetic or binary. The two may be active concurrently but
// never interleave within one logical batch. Context owns the batch FSM
// guard so callers cannot issue Start/Stop out of order.
type Context struct {
	Backend Backend
	Label   string // "arithmetic" or "binary", for diagnostics

	PartyID    int
	NumParties int
	FieldTag   string

	openState BatchState
	multState BatchState

	// handle is opaque backend-private state threaded through Init and
	// every subsequent call, mirroring the original's MPC_CTX handle.
	handle uint64
}

// NewContext creates a Context bound to the given backend. Init must
// be called before any other method.
func NewContext(label string, backend Backend) *Context {
	return &Context{Backend: backend, Label: label}
}

// Init initializes the context with the protocol parameters of the
// backend init call: (party_id, num_parties, field_tag,
// open_batch_hint, mult_batch_hint, bits_batch_hint).
func (c *Context) Init(partyID, numParties int, fieldTag string, hintOpen, hintMult, hintBits int) error {
	c.PartyID = partyID
	c.NumParties = numParties
	c.FieldTag = fieldTag
	if err := c.Backend.Init(c, partyID, numParties, fieldTag, hintOpen, hintMult, hintBits); err != nil {
		return fmt.Errorf("ext[%s]: init: %w", c.Label, err)
	}
	c.openState = StateIdle
	c.multState = StateIdle
	return nil
}

// Term terminates the context, the inverse of Init.
func (c *Context) Term() error {
	if err := c.Backend.Term(c); err != nil {
		return fmt.Errorf("ext[%s]: term: %w", c.Label, err)
	}
	return nil
}

// StartOpen begins a batched open, enforcing IDLE -> STARTED.
func (c *Context) StartOpen(sharesIn Share) error {
	if c.openState != StateIdle {
		return fmt.Errorf("ext[%s]: StartOpen called in state %v, want IDLE", c.Label, c.openState)
	}
	if err := sharesIn.Validate(); err != nil {
		return err
	}
	if err := c.Backend.StartOpen(c, sharesIn); err != nil {
		return fmt.Errorf("ext[%s]: start_open: %w", c.Label, err)
	}
	c.openState = StateStarted
	return nil
}

// StopOpen completes a batched open, enforcing STARTED -> STOPPED ->
// IDLE (the Stop call always leaves the FSM ready for the next batch).
func (c *Context) StopOpen() (Clear, error) {
	if c.openState != StateStarted {
		return Clear{}, fmt.Errorf("ext[%s]: StopOpen called in state %v, want STARTED", c.Label, c.openState)
	}
	c.openState = StateStopped
	out, err := c.Backend.StopOpen(c)
	c.openState = StateIdle
	if err != nil {
		return Clear{}, fmt.Errorf("ext[%s]: stop_open: %w", c.Label, err)
	}
	return out, nil
}

// StartMult begins a batched multiply, enforcing IDLE -> STARTED.
func (c *Context) StartMult(factor1, factor2 Share) error {
	if c.multState != StateIdle {
		return fmt.Errorf("ext[%s]: StartMult called in state %v, want IDLE", c.Label, c.multState)
	}
	if err := factor1.Validate(); err != nil {
		return err
	}
	if err := factor2.Validate(); err != nil {
		return err
	}
	if factor1.Count != factor2.Count {
		return fmt.Errorf("ext[%s]: mismatched factor counts %d != %d", c.Label, factor1.Count, factor2.Count)
	}
	if err := c.Backend.StartMult(c, factor1, factor2); err != nil {
		return fmt.Errorf("ext[%s]: start_mult: %w", c.Label, err)
	}
	c.multState = StateStarted
	return nil
}

// StopMult completes a batched multiply.
func (c *Context) StopMult() (Share, error) {
	if c.multState != StateStarted {
		return Share{}, fmt.Errorf("ext[%s]: StopMult called in state %v, want STARTED", c.Label, c.multState)
	}
	c.multState = StateStopped
	out, err := c.Backend.StopMult(c)
	c.multState = StateIdle
	if err != nil {
		return Share{}, fmt.Errorf("ext[%s]: stop_mult: %w", c.Label, err)
	}
	return out, nil
}

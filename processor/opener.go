//
// opener.go
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

// opener drives a single extension Context through the Start/Stop
// batch protocol for opens and multiplies, adding the telemetry
// counters reported at teardown ("Sent {n} elements in {r} rounds").
// The FSM guard itself lives in ext.Context; opener only adds the
// gather/scatter step around it, a thin wrapper rather than a
// reimplementation of the wire-level MAC_Check protocol.
type opener struct {
	ctx   *ext.Context
	field field.Field
	md    int

	sent   uint64
	rounds uint64

	pendingOpenCount int
	pendingMultCount int
}

func newOpener(ctx *ext.Context, f field.Field, md int) *opener {
	return &opener{ctx: ctx, field: f, md: md}
}

// StartOpen begins an open batch without waiting for it to complete,
// the split counterpart of Open used when the bytecode issues
// POpen_Start and POpen_Stop as separate instructions.
func (o *opener) StartOpen(shares []share.Share) error {
	buf := marshalShares(shares, o.field, o.md)
	o.pendingOpenCount = len(shares)
	if err := o.ctx.StartOpen(buf); err != nil {
		return NewError(ErrBackendCallFailure, "start_open", err)
	}
	return nil
}

// FinishOpen completes a batch begun with StartOpen.
func (o *opener) FinishOpen() ([]field.Element, error) {
	out, err := o.ctx.StopOpen()
	if err != nil {
		return nil, NewError(ErrBackendCallFailure, "stop_open", err)
	}
	o.sent += uint64(o.pendingOpenCount)
	o.rounds++
	return unmarshalClears(out, o.field)
}

// StartMultBatch begins a multiply batch without waiting for it to
// complete, the split counterpart of Mult.
func (o *opener) StartMultBatch(ops []share.Share) error {
	if len(ops)%2 != 0 {
		return NewError(ErrOddOperandCount, "start_mult",
			fmt.Errorf("odd number of multiply operands: %d", len(ops)))
	}
	n := len(ops) / 2
	lhs := make([]share.Share, n)
	rhs := make([]share.Share, n)
	for i := 0; i < n; i++ {
		lhs[i] = ops[2*i]
		rhs[i] = ops[2*i+1]
	}
	o.pendingMultCount = len(ops)
	f1 := marshalShares(lhs, o.field, o.md)
	f2 := marshalShares(rhs, o.field, o.md)
	if err := o.ctx.StartMult(f1, f2); err != nil {
		return NewError(ErrBackendCallFailure, "start_mult", err)
	}
	return nil
}

// FinishMult completes a batch begun with StartMultBatch.
func (o *opener) FinishMult() ([]share.Share, error) {
	out, err := o.ctx.StopMult()
	if err != nil {
		return nil, NewError(ErrBackendCallFailure, "stop_mult", err)
	}
	o.sent += uint64(o.pendingMultCount)
	o.rounds++
	return unmarshalShares(out, o.field)
}

// Open runs one full open batch: shares in, clears out.
func (o *opener) Open(shares []share.Share) ([]field.Element, error) {
	buf := marshalShares(shares, o.field, o.md)
	if err := o.ctx.StartOpen(buf); err != nil {
		return nil, NewError(ErrBackendCallFailure, "start_open", err)
	}
	out, err := o.ctx.StopOpen()
	if err != nil {
		return nil, NewError(ErrBackendCallFailure, "stop_open", err)
	}
	o.sent += uint64(len(shares))
	o.rounds++
	return unmarshalClears(out, o.field)
}

// Mult runs one full multiply batch over a flat operand list: even
// indices are the left factors, odd indices the right factors. An odd
// number of shares passed to multiply is a fatal, reported error. ops
// must have even length.
func (o *opener) Mult(ops []share.Share) ([]share.Share, error) {
	if len(ops)%2 != 0 {
		return nil, NewError(ErrOddOperandCount, "start_mult",
			fmt.Errorf("odd number of multiply operands: %d", len(ops)))
	}
	n := len(ops) / 2
	lhs := make([]share.Share, n)
	rhs := make([]share.Share, n)
	for i := 0; i < n; i++ {
		lhs[i] = ops[2*i]
		rhs[i] = ops[2*i+1]
	}
	f1 := marshalShares(lhs, o.field, o.md)
	f2 := marshalShares(rhs, o.field, o.md)
	if err := o.ctx.StartMult(f1, f2); err != nil {
		return nil, NewError(ErrBackendCallFailure, "start_mult", err)
	}
	out, err := o.ctx.StopMult()
	if err != nil {
		return nil, NewError(ErrBackendCallFailure, "stop_mult", err)
	}
	o.sent += uint64(len(ops))
	o.rounds++
	return unmarshalShares(out, o.field)
}

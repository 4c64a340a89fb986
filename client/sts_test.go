//
// sts_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package client

import (
	"crypto/ed25519"
	"net"
	"testing"
)

func TestSTSHandshakeDerivesMatchingKeys(t *testing.T) {
	initPub, initPriv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	respPub, respPriv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	a, b := net.Pipe()
	initConn := NewConn(a)
	respConn := NewConn(b)

	type result struct {
		keys *Keys
		err  error
	}
	initCh := make(chan result, 1)
	respCh := make(chan result, 1)

	go func() {
		k, err := Initiate(initConn, initPriv, respPub)
		initCh <- result{k, err}
	}()
	go func() {
		k, err := Respond(respConn, respPriv, initPub)
		respCh <- result{k, err}
	}()

	ir := <-initCh
	rr := <-respCh
	if ir.err != nil {
		t.Fatalf("initiator: %v", ir.err)
	}
	if rr.err != nil {
		t.Fatalf("responder: %v", rr.err)
	}

	if ir.keys.SendKey != rr.keys.RecvKey {
		t.Fatal("initiator send key does not match responder receive key")
	}
	if ir.keys.RecvKey != rr.keys.SendKey {
		t.Fatal("initiator receive key does not match responder send key")
	}
	if ir.keys.SendSeq != 0 || ir.keys.RecvSeq != 0 || rr.keys.SendSeq != 0 || rr.keys.RecvSeq != 0 {
		t.Fatal("expected both sequence counters to be reset to zero")
	}
	if initConn.State != StateSTSKeyed || respConn.State != StateSTSKeyed {
		t.Fatalf("expected both connections STS-KEYED, got %v / %v", initConn.State, respConn.State)
	}
}

func TestSTSHandshakeRejectsWrongPeerKey(t *testing.T) {
	_, initPriv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	_, respPriv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	impostorPub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	a, b := net.Pipe()
	initConn := NewConn(a)
	respConn := NewConn(b)

	// The responder uses the initiator's genuine public key so it
	// completes its side normally; the initiator is handed an
	// impostor key for the responder and must reject msg2's
	// signature. Closing both pipe ends once the initiator returns
	// unblocks the responder's pending read on msg3.
	errCh := make(chan error, 1)
	go func() {
		_, err := Initiate(initConn, initPriv, impostorPub)
		errCh <- err
		a.Close()
		b.Close()
	}()

	go Respond(respConn, respPriv, initPriv.Public().(ed25519.PublicKey))

	if err := <-errCh; err == nil {
		t.Fatal("expected the initiator to reject the impostor peer key")
	}
}

//
// sts.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package client

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// Message sizes of the Station-to-Station exchange.
const (
	Msg1Size = 32 // initiator's ephemeral X25519 public key
	Msg2Size = 96 // responder's ephemeral pubkey (32) || Ed25519 sig (64)
	Msg3Size = 64 // initiator's Ed25519 sig over (msg1 || responder pubkey)
)

// Keys holds the symmetric keys and sequence counters an STS handshake
// derives: a 256-bit send key and a 256-bit receive key, each paired
// with its own 64-bit sequence counter initialized to zero.
type Keys struct {
	SendKey [32]byte
	RecvKey [32]byte
	SendSeq uint64
	RecvSeq uint64
}

func deriveSessionKeys(shared, initiatorPub, responderPub []byte) (toResponder, toInitiator [32]byte) {
	h := sha256.New()
	h.Write(shared)
	h.Write([]byte("spdz-client-sts-i2r"))
	h.Write(initiatorPub)
	h.Write(responderPub)
	copy(toResponder[:], h.Sum(nil))

	h = sha256.New()
	h.Write(shared)
	h.Write([]byte("spdz-client-sts-r2i"))
	h.Write(initiatorPub)
	h.Write(responderPub)
	copy(toInitiator[:], h.Sum(nil))
	return
}

// Initiate runs the initiator role of the STS handshake over conn:
// send msg1 (ephemeral DH public key), receive msg2 (responder's
// ephemeral public key plus its signature over msg1||its public key),
// verify it against peerPub, send msg3 (our signature over
// msg1||responder public key), and install the derived keys.
func Initiate(conn *Conn, priv ed25519.PrivateKey, peerPub ed25519.PublicKey) (*Keys, error) {
	ephPriv, ephPub, err := generateEphemeral()
	if err != nil {
		return nil, err
	}
	if err := conn.SendRaw(ephPub[:]); err != nil {
		return nil, fmt.Errorf("client: sts: send msg1: %w", err)
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}

	msg2, err := conn.ReceiveRaw(Msg2Size)
	if err != nil {
		return nil, fmt.Errorf("client: sts: receive msg2: %w", err)
	}
	respPub := msg2[:32]
	sig := msg2[32:]
	if !ed25519.Verify(peerPub, append(append([]byte{}, ephPub[:]...), respPub...), sig) {
		return nil, fmt.Errorf("client: sts: responder signature verification failed")
	}
	conn.State = StateDHKeyed

	shared, err := curve25519.X25519(ephPriv[:], respPub)
	if err != nil {
		return nil, fmt.Errorf("client: sts: dh: %w", err)
	}

	msg3 := ed25519.Sign(priv, append(append([]byte{}, ephPub[:]...), respPub...))
	if len(msg3) != Msg3Size {
		return nil, fmt.Errorf("client: sts: unexpected signature size %d", len(msg3))
	}
	if err := conn.SendRaw(msg3); err != nil {
		return nil, fmt.Errorf("client: sts: send msg3: %w", err)
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}

	sendKey, recvKey := deriveSessionKeys(shared, ephPub[:], respPub)
	keys := &Keys{SendKey: sendKey, RecvKey: recvKey}
	conn.InstallSTSKeys(keys)
	return keys, nil
}

// Respond runs the responder role of the STS handshake over conn:
// receive msg1, send msg2 (our ephemeral public key plus our signature
// over msg1||our public key), receive msg3, verify it against peerPub,
// and install the derived keys (swapped relative to Initiate so both
// sides agree on which key is "send" and which is "receive").
func Respond(conn *Conn, priv ed25519.PrivateKey, peerPub ed25519.PublicKey) (*Keys, error) {
	msg1, err := conn.ReceiveRaw(Msg1Size)
	if err != nil {
		return nil, fmt.Errorf("client: sts: receive msg1: %w", err)
	}

	ephPriv, ephPub, err := generateEphemeral()
	if err != nil {
		return nil, err
	}

	sig := ed25519.Sign(priv, append(append([]byte{}, msg1...), ephPub[:]...))
	msg2 := append(append([]byte{}, ephPub[:]...), sig...)
	if len(msg2) != Msg2Size {
		return nil, fmt.Errorf("client: sts: unexpected msg2 size %d", len(msg2))
	}
	if err := conn.SendRaw(msg2); err != nil {
		return nil, fmt.Errorf("client: sts: send msg2: %w", err)
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	conn.State = StateDHKeyed

	shared, err := curve25519.X25519(ephPriv[:], msg1)
	if err != nil {
		return nil, fmt.Errorf("client: sts: dh: %w", err)
	}

	msg3, err := conn.ReceiveRaw(Msg3Size)
	if err != nil {
		return nil, fmt.Errorf("client: sts: receive msg3: %w", err)
	}
	if !ed25519.Verify(peerPub, append(append([]byte{}, msg1...), ephPub[:]...), msg3) {
		return nil, fmt.Errorf("client: sts: initiator signature verification failed")
	}

	initiatorToResponder, responderToInitiator := deriveSessionKeys(shared, msg1, ephPub[:])
	keys := &Keys{SendKey: responderToInitiator, RecvKey: initiatorToResponder}
	conn.InstallSTSKeys(keys)
	return keys, nil
}

func generateEphemeral() (priv, pub [32]byte, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return priv, pub, err
	}
	pubSlice, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return priv, pub, err
	}
	copy(pub[:], pubSlice)
	return priv, pub, nil
}

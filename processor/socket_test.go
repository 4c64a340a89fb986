//
// socket_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"net"
	"testing"

	"github.com/spdzgo/runtime/client"
	"github.com/spdzgo/runtime/env"
)

func TestWriteReadSocketIntsRoundTrip(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Ni: 4})
	proc.Regs.SetInt(0, 11)
	proc.Regs.SetInt(1, 22)

	a, b := net.Pipe()
	writerSockets := NewSockets()
	writerSockets.Register(0, client.NewConn(a))
	readerSockets := NewSockets()
	readerSockets.Register(0, client.NewConn(b))

	done := make(chan error, 1)
	go func() {
		done <- proc.WriteSocket(writerSockets, 0, 0, RegClear, SecrecyInt, false, []int{0, 1})
	}()

	if err := proc.ReadSocketInts(readerSockets, 0, 0, []int{2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	v0, _ := proc.Regs.Int(2)
	v1, _ := proc.Regs.Int(3)
	if v0 != 11 || v1 != 22 {
		t.Fatalf("got (%d,%d), want (11,22)", v0, v1)
	}
}

func TestWriteSocketUnconfiguredIsError(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	sockets := NewSockets()
	err = proc.WriteSocket(sockets, 0, 0, RegClear, SecrecyInt, false, nil)
	if err == nil {
		t.Fatal("expected an error writing to an unregistered socket")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrSocketUnconfigured {
		t.Fatalf("expected SocketUnconfigured, got %v", err)
	}
}

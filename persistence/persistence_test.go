//
// persistence_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package persistence

import (
	"path/filepath"
	"testing"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/share"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ring, err := field.NewRing(64)
	if err != nil {
		t.Fatal(err)
	}
	st := NewStore(dir, 0, ring)

	shares := []share.Share{
		{A: ring.FromUint64(1), Mac: ring.FromUint64(2)},
		{A: ring.FromUint64(3), Mac: ring.FromUint64(4)},
		{A: ring.FromUint64(5), Mac: ring.FromUint64(6)},
	}
	if err := st.Write(shares); err != nil {
		t.Fatal(err)
	}

	got, endPosn, err := st.Read(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(got))
	}
	if !got[0].A.Equal(shares[0].A) || !got[1].A.Equal(shares[1].A) {
		t.Fatal("read shares do not match written shares")
	}
	if endPosn != int64(2*2*ring.Size()) {
		t.Fatalf("unexpected end position %d", endPosn)
	}
}

func TestReadPastEndReturnsEOFSentinel(t *testing.T) {
	dir := t.TempDir()
	ring, _ := field.NewRing(64)
	st := NewStore(dir, 0, ring)

	if err := st.Write([]share.Share{{A: ring.FromUint64(1), Mac: ring.FromUint64(1)}}); err != nil {
		t.Fatal(err)
	}

	_, endPosn, err := st.Read(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if endPosn != EOF {
		t.Fatalf("expected EOF sentinel, got %d", endPosn)
	}
}

func TestReadMissingFileReturnsSentinel(t *testing.T) {
	dir := t.TempDir()
	ring, _ := field.NewRing(64)
	st := &Store{Path: filepath.Join(dir, "does-not-exist.data"), Field: ring}

	_, endPosn, err := st.Read(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if endPosn != MissingFile {
		t.Fatalf("expected MissingFile sentinel, got %d", endPosn)
	}
}

//
// share_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.
//

package share

import (
	"math/big"
	"testing"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/octetstream"
)

func testField(t *testing.T) field.Field {
	f, err := field.NewModular(big.NewInt(2147483647))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// threeParties builds per-party MAC key shares alpha_0..alpha_2 summing
// to alpha, mirroring a three-party classic-SPDZ setup.
func threeParties(t *testing.T, f field.Field) (alpha field.Element, alphaShares [3]field.Element) {
	alphaShares = [3]field.Element{
		f.FromUint64(11),
		f.FromUint64(22),
		f.FromUint64(33),
	}
	alpha = alphaShares[0].Add(alphaShares[1]).Add(alphaShares[2])
	return
}

func TestThreePartyOpenOfConstant(t *testing.T) {
	f := testField(t)
	alpha, alphaShares := threeParties(t, f)

	clear := f.FromUint64(42)
	var shares [3]Share
	for i := 0; i < 3; i++ {
		shares[i] = ShareFromClear(clear, i, alphaShares[i])
	}

	opened := Combine(shares[:])
	if !opened.Equal(clear) {
		t.Fatalf("opened value mismatch: got %v want %v", opened, clear)
	}
	if !CheckMACs(shares[:], alpha) {
		t.Fatal("MAC check should pass for honestly constructed shares")
	}
}

func TestAffineAddOfPublicConstant(t *testing.T) {
	f := testField(t)
	alpha, alphaShares := threeParties(t, f)

	clear := f.FromUint64(42)
	var shares [3]Share
	for i := 0; i < 3; i++ {
		shares[i] = ShareFromClear(clear, i, alphaShares[i])
	}

	c := f.FromUint64(58)
	var added [3]Share
	for i := 0; i < 3; i++ {
		// Only party 0 owns the injection slot
		added[i] = AddConst(shares[i], c, i == 0, alphaShares[i])
	}

	opened := Combine(added[:])
	want := f.FromUint64(100)
	if !opened.Equal(want) {
		t.Fatalf("opened value mismatch: got %v want %v", opened, want)
	}
	if !CheckMACs(added[:], alpha) {
		t.Fatal("MAC check should pass after constant injection")
	}
}

func TestLinearityOfShares(t *testing.T) {
	f := testField(t)
	alpha, alphaShares := threeParties(t, f)

	x := f.FromUint64(7)
	y := f.FromUint64(13)
	var xs, ys [3]Share
	for i := 0; i < 3; i++ {
		xs[i] = ShareFromClear(x, i, alphaShares[i])
		ys[i] = ShareFromClear(y, i, alphaShares[i])
	}

	a := f.FromUint64(3)
	b := f.FromUint64(5)

	var result [3]Share
	for i := 0; i < 3; i++ {
		result[i] = Add(MulConst(a, xs[i]), MulConst(b, ys[i]))
	}

	opened := Combine(result[:])
	want := a.Mul(x).Add(b.Mul(y))
	if !opened.Equal(want) {
		t.Fatalf("linearity mismatch: got %v want %v", opened, want)
	}
	if !CheckMACs(result[:], alpha) {
		t.Fatal("MAC check should pass for linear combination")
	}
}

func TestCheckMACsDetectsTampering(t *testing.T) {
	f := testField(t)
	alpha, alphaShares := threeParties(t, f)

	clear := f.FromUint64(99)
	var shares [3]Share
	for i := 0; i < 3; i++ {
		shares[i] = ShareFromClear(clear, i, alphaShares[i])
	}
	if !CheckMACs(shares[:], alpha) {
		t.Fatal("untampered shares must pass")
	}

	tamperedA := shares
	tamperedA[1].A = tamperedA[1].A.Add(f.One())
	if CheckMACs(tamperedA[:], alpha) {
		t.Fatal("tampering A should be detected")
	}

	tamperedMac := shares
	tamperedMac[2].Mac = tamperedMac[2].Mac.Add(f.One())
	if CheckMACs(tamperedMac[:], alpha) {
		t.Fatal("tampering Mac should be detected")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	f := testField(t)
	_, alphaShares := threeParties(t, f)

	s := ShareFromClear(f.FromUint64(12345), 1, alphaShares[1])

	os := octetstream.New()
	Pack(s, os)

	rs := octetstream.Wrap(os.Bytes())
	got, err := Unpack(rs, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.A.Equal(s.A) || !got.Mac.Equal(s.Mac) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, s)
	}
}

func TestReplicatedShareFromClear(t *testing.T) {
	f := testField(t)
	x1 := f.FromUint64(5)
	x2 := f.FromUint64(9)
	x3 := f.FromUint64(14)
	c := x1.Add(x2).Add(x3)

	var shares [3]Share
	for id := 0; id < 3; id++ {
		shares[id] = ShareFromClearReplicated(id, x1, x2, x3)
	}
	opened := Combine(shares[:])
	if !opened.Equal(c.Add(c)) {
		// Each replicated share's `a` holds the sum of the two
		// additive pieces it carries; summing all three a-components
		// counts each x_i exactly twice, matching Math/Share.cpp.
		t.Fatalf("replicated reconstruction mismatch: got %v want %v", opened, c.Add(c))
	}
}

func TestConstSubReplicatedPlayer0Oddity(t *testing.T) {
	// Documents the observed (not "fixed") behavior described on
	// ConstSubReplicated: player 0's mac component becomes -S.mac rather than
	// alpha_i*c - S.mac.
	f := testField(t)
	s := Share{A: f.FromUint64(3), Mac: f.FromUint64(7)}
	c := f.FromUint64(10)

	result := ConstSubReplicated(c, s, 0)
	if !result.A.Equal(f.Zero().Sub(s.A)) {
		t.Fatalf("player 0 A should be -S.a, got %v", result.A)
	}
	if !result.Mac.Equal(f.Zero().Sub(s.Mac)) {
		t.Fatalf("player 0 Mac should be -S.mac (observed oddity), got %v", result.Mac)
	}
}

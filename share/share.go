//
// share.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.
//

// Package share implements the MAC-authenticated share S<F>: a pair
// (value share, MAC share) over a field.Field, and the linear/affine
// operations that preserve the MAC invariant across parties.
package share

import (
	"fmt"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/octetstream"
)

// Share is one party's authenticated share of a secret value: A is the
// party's share of x, Mac is the party's share of alpha*x. Both
// components must belong to the same field.
type Share struct {
	A   field.Element
	Mac field.Element
}

func checkSameField(a, b field.Element) {
	if a.Kind() != b.Kind() || a.Field() != b.Field() {
		panic(fmt.Sprintf("share: mixed field kinds %v/%v", a.Kind(), b.Kind()))
	}
}

// New builds a Share directly from its two components. Both components
// must already be in the same field.
func New(a, mac field.Element) Share {
	checkSameField(a, mac)
	return Share{A: a, Mac: mac}
}

// ShareFromClear constructs party my_id's share of the public clear
// value c under MAC key share alphai:
//
//	a = c if my_id == 0 else 0; mac = alpha_i * c
func ShareFromClear(c field.Element, myID int, alphai field.Element) Share {
	checkSameField(c, alphai)
	var a field.Element
	if myID == 0 {
		a = c
	} else {
		a = c.Field().Zero()
	}
	return Share{A: a, Mac: alphai.Mul(c)}
}

// ShareFromClearReplicated constructs a replicated-share decomposition
// of the clear value c given three independent additive shares
// x1, x2, x3 summing to c (x1+x2+x3 == c), per the EXT_NEC_RING branch
// of Math/Share.cpp's Share constructor. myID selects which two of the
// three additive pieces this party holds, matching the original's
// per-party case table exactly.
func ShareFromClearReplicated(myID int, x1, x2, x3 field.Element) Share {
	checkSameField(x1, x2)
	checkSameField(x1, x3)
	switch myID {
	case 0:
		return Share{A: x2.Add(x3), Mac: x3}
	case 1:
		return Share{A: x3.Add(x1), Mac: x1}
	case 2:
		return Share{A: x1.Add(x2), Mac: x2}
	default:
		panic(fmt.Sprintf("share: invalid replicated party id %d", myID))
	}
}

// Add computes S = T + U componentwise.
func Add(t, u Share) Share {
	checkSameField(t.A, u.A)
	checkSameField(t.Mac, u.Mac)
	return Share{A: t.A.Add(u.A), Mac: t.Mac.Add(u.Mac)}
}

// Sub computes S = T - U componentwise.
func Sub(t, u Share) Share {
	checkSameField(t.A, u.A)
	checkSameField(t.Mac, u.Mac)
	return Share{A: t.A.Sub(u.A), Mac: t.Mac.Sub(u.Mac)}
}

// MulConst computes S = c * T.
func MulConst(c field.Element, t Share) Share {
	checkSameField(c, t.A)
	return Share{A: c.Mul(t.A), Mac: c.Mul(t.Mac)}
}

// AddConst computes the affine S = T + c under the classic-SPDZ
// constant-injection rule: p1 identifies the party that owns the
// clear value injection slot.
//
//	S.a = T.a + c if p1 else T.a
//	S.mac = T.mac + alpha_i * c
func AddConst(t Share, c field.Element, p1 bool, alphai field.Element) Share {
	checkSameField(t.A, c)
	checkSameField(t.Mac, alphai)
	var a field.Element
	if p1 {
		a = t.A.Add(c)
	} else {
		a = t.A
	}
	return Share{A: a, Mac: t.Mac.Add(alphai.Mul(c))}
}

// SubConst computes S = T - c, symmetric to AddConst.
func SubConst(t Share, c field.Element, p1 bool, alphai field.Element) Share {
	checkSameField(t.A, c)
	checkSameField(t.Mac, alphai)
	var a field.Element
	if p1 {
		a = t.A.Sub(c)
	} else {
		a = t.A
	}
	return Share{A: a, Mac: t.Mac.Sub(alphai.Mul(c))}
}

// ConstSub computes S = c - T:
//
//	S.a = c - T.a if p1 else -T.a
//	S.mac = alpha_i*c - T.mac
func ConstSub(c field.Element, t Share, p1 bool, alphai field.Element) Share {
	checkSameField(t.A, c)
	checkSameField(t.Mac, alphai)
	var a field.Element
	if p1 {
		a = c.Sub(t.A)
	} else {
		a = t.A.Negate()
	}
	return Share{A: a, Mac: alphai.Mul(c).Sub(t.Mac)}
}

// AddConstReplicated injects the public constant c into the replicated
// share t for the party-tagged rule of Math/Share.cpp's EXT_NEC_RING
// add(S, aa, player) branch:
//
//	player 0: a, mac unchanged (inherited from S)
//	player 1: a += aa; mac += aa
//	player 2: a += aa; mac unchanged
func AddConstReplicated(t Share, c field.Element, player int) Share {
	checkSameField(t.A, c)
	switch player {
	case 0:
		return Share{A: t.A, Mac: t.Mac}
	case 1:
		return Share{A: t.A.Add(c), Mac: t.Mac.Add(c)}
	case 2:
		return Share{A: t.A.Add(c), Mac: t.Mac}
	default:
		panic(fmt.Sprintf("share: invalid replicated party id %d", player))
	}
}

// SubConstReplicated is the replicated-share analogue of AddConstReplicated
// for subtraction, matching Math/Share.cpp's EXT_NEC_RING sub(S, aa, player):
//
//	player 0: a, mac unchanged
//	player 1: a -= aa; mac -= aa
//	player 2: a -= aa; mac unchanged
func SubConstReplicated(t Share, c field.Element, player int) Share {
	checkSameField(t.A, c)
	switch player {
	case 0:
		return Share{A: t.A, Mac: t.Mac}
	case 1:
		return Share{A: t.A.Sub(c), Mac: t.Mac.Sub(c)}
	case 2:
		return Share{A: t.A.Sub(c), Mac: t.Mac}
	default:
		panic(fmt.Sprintf("share: invalid replicated party id %d", player))
	}
}

// ConstSubReplicated computes c - T under the replicated rule of
// Math/Share.cpp's EXT_NEC_RING sub(aa, S, player). The player-0 branch
// is carried over exactly as observed in the original, including its
// mac.sub(0, S.mac) shape (mac becomes -S.mac rather than following
// the additive-constant pattern of the other two branches). This is an
// open question needing protocol-designer confirmation rather than a
// guessed fix, so it is preserved verbatim here. See DESIGN.md.
func ConstSubReplicated(c field.Element, t Share, player int) Share {
	checkSameField(t.A, c)
	zero := c.Field().Zero()
	switch player {
	case 0:
		return Share{A: zero.Sub(t.A), Mac: zero.Sub(t.Mac)}
	case 1:
		return Share{A: c.Sub(t.A), Mac: c.Sub(t.Mac)}
	case 2:
		return Share{A: c.Sub(t.A), Mac: zero.Sub(t.Mac)}
	default:
		panic(fmt.Sprintf("share: invalid replicated party id %d", player))
	}
}

// Combine reconstructs a clear value from every party's share of it by
// summing the A components MAC check procedure.
func Combine(shares []Share) field.Element {
	if len(shares) == 0 {
		panic("share: Combine called with no shares")
	}
	sum := shares[0].A
	for _, s := range shares[1:] {
		checkSameField(sum, s.A)
		sum = sum.Add(s.A)
	}
	return sum
}

// CombineMacs sums every party's MAC share, the mac-side analogue of
// Combine.
func CombineMacs(shares []Share) field.Element {
	if len(shares) == 0 {
		panic("share: CombineMacs called with no shares")
	}
	sum := shares[0].Mac
	for _, s := range shares[1:] {
		checkSameField(sum, s.Mac)
		sum = sum.Add(s.Mac)
	}
	return sum
}

// CheckMACs implements the classic-SPDZ MAC check: given every party's
// share of x and the (already-summed) global MAC key alpha, it returns
// true iff alpha*x == sum(mac_k). A single tampered A or Mac component
// on any share causes this to return false.
func CheckMACs(shares []Share, alpha field.Element) bool {
	x := Combine(shares)
	tau := alpha.Mul(x)
	for _, s := range shares {
		checkSameField(tau, s.Mac)
		tau = tau.Sub(s.Mac)
	}
	return tau.IsZero()
}

// Pack appends the share's canonical encoding (A, then Mac) to the
// stream Share.pack.
func Pack(s Share, os *octetstream.Stream) {
	os.PutElement(s.A)
	os.PutElement(s.Mac)
}

// Unpack reads a share from the stream using f to decode both
// components Share.unpack.
func Unpack(os *octetstream.Stream, f field.Field) (Share, error) {
	a, err := os.GetElement(f)
	if err != nil {
		return Share{}, fmt.Errorf("share: unpack A: %w", err)
	}
	mac, err := os.GetElement(f)
	if err != nil {
		return Share{}, fmt.Errorf("share: unpack Mac: %w", err)
	}
	return Share{A: a, Mac: mac}, nil
}

//
// modular.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.
//

package field

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrNotInvertible is returned by Invert when the element is zero.
var ErrNotInvertible = errors.New("field: element has no inverse")

// Prime is the per-process descriptor for a modular field F_p, carrying
// the precomputed Montgomery constants. It corresponds to the
// original's Zp_Data: a modulus shared by every gfp value.
type Prime struct {
	p     *big.Int
	bits  int
	bytes int
	// r is R = 2^(64*words), rInv its inverse mod p; words is the
	// limb count driving word64_size
	words int
	r     *big.Int
	rInv  *big.Int
}

// NewPrime builds the Montgomery descriptor for modulus p. p must be
// odd (true of every cryptographic SPDZ prime).
func NewPrime(p *big.Int) (*Prime, error) {
	if p.Sign() <= 0 {
		return nil, fmt.Errorf("field: modulus must be positive")
	}
	if p.Bit(0) == 0 {
		return nil, fmt.Errorf("field: modulus must be odd for Montgomery form")
	}
	bits := p.BitLen()
	words := WordSize(bits)
	r := new(big.Int).Lsh(big.NewInt(1), uint(words*64))
	rInv := new(big.Int).ModInverse(r, p)
	if rInv == nil {
		return nil, fmt.Errorf("field: modulus not invertible mod 2^%d", words*64)
	}
	return &Prime{
		p:     new(big.Int).Set(p),
		bits:  bits,
		bytes: (bits + 7) / 8,
		words: words,
		r:     r,
		rInv:  rInv,
	}, nil
}

// Modular is the F_p field factory bound to a Prime descriptor.
type Modular struct {
	prime *Prime
}

// NewModular creates the F_p field factory for modulus p.
func NewModular(p *big.Int) (*Modular, error) {
	prime, err := NewPrime(p)
	if err != nil {
		return nil, err
	}
	return &Modular{prime: prime}, nil
}

// Kind implements Field.
func (f *Modular) Kind() Kind { return KindModular }

// Size implements Field: bytes per packed element, word-aligned to a
// whole number of 8-byte words (word64_size * 8).
func (f *Modular) Size() int { return f.prime.words * 8 }

// Bits implements Field.
func (f *Modular) Bits() int { return f.prime.bits }

// Zero implements Field.
func (f *Modular) Zero() Element { return f.fromCanonical(big.NewInt(0)) }

// One implements Field.
func (f *Modular) One() Element { return f.fromCanonical(big.NewInt(1)) }

// FromUint64 implements Field.
func (f *Modular) FromUint64(v uint64) Element {
	return f.fromCanonical(new(big.Int).SetUint64(v))
}

// RandomElement implements Field.
func (f *Modular) RandomElement(r io.Reader) (Element, error) {
	// Rejection sample so the distribution is exactly uniform over
	// [0, p) rather than biased toward the low end of the byte range.
	byteLen := f.prime.bytes
	buf := make([]byte, byteLen)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(f.prime.p) < 0 {
			return f.fromCanonical(v), nil
		}
	}
}

// Unpack implements Field.
func (f *Modular) Unpack(src []byte) (Element, []byte, error) {
	e := f.Zero().(*modularElement)
	rest, err := e.Unpack(src)
	if err != nil {
		return nil, nil, err
	}
	return e, rest, nil
}

// String implements Field.
func (f *Modular) String() string {
	return fmt.Sprintf("F_%s", f.prime.p.String())
}

// toMontgomery converts a canonical residue into Montgomery form:
// mont = x * R mod p.
func (f *Modular) toMontgomery(x *big.Int) *big.Int {
	m := new(big.Int).Mul(x, f.prime.r)
	return m.Mod(m, f.prime.p)
}

// fromMontgomery converts a Montgomery-form residue back to canonical:
// x = mont * R^-1 mod p.
func (f *Modular) fromMontgomery(mont *big.Int) *big.Int {
	m := new(big.Int).Mul(mont, f.prime.rInv)
	return m.Mod(m, f.prime.p)
}

func (f *Modular) fromCanonical(x *big.Int) *modularElement {
	v := new(big.Int).Mod(x, f.prime.p)
	return &modularElement{field: f, mont: f.toMontgomery(v)}
}

// modularElement is an element of F_p, represented internally as a
// multi-limb integer in Montgomery form. Arithmetic is carried out by
// converting to canonical form around each math/big call and back into
// Montgomery form for storage; this mirrors the interface contract of
// gfp.h without the hand-rolled REDC step, which is out of scope here.
type modularElement struct {
	field *Modular
	mont  *big.Int
}

func (e *modularElement) canonical() *big.Int {
	return e.field.fromMontgomery(e.mont)
}

func (e *modularElement) Kind() Kind   { return KindModular }
func (e *modularElement) Field() Field { return e.field }

func (e *modularElement) Add(o Element) Element {
	oe := e.mustSame(o)
	sum := new(big.Int).Add(e.mont, oe.mont)
	sum.Mod(sum, e.field.prime.p)
	return &modularElement{field: e.field, mont: sum}
}

func (e *modularElement) Sub(o Element) Element {
	oe := e.mustSame(o)
	diff := new(big.Int).Sub(e.mont, oe.mont)
	diff.Mod(diff, e.field.prime.p)
	return &modularElement{field: e.field, mont: diff}
}

func (e *modularElement) Mul(o Element) Element {
	oe := e.mustSame(o)
	// Montgomery product: (a*R)*(b*R)*R^-1 = a*b*R (mod p).
	prod := new(big.Int).Mul(e.mont, oe.mont)
	prod.Mul(prod, e.field.prime.rInv)
	prod.Mod(prod, e.field.prime.p)
	return &modularElement{field: e.field, mont: prod}
}

func (e *modularElement) Square() Element { return e.Mul(e) }

func (e *modularElement) Negate() Element {
	if e.mont.Sign() == 0 {
		return &modularElement{field: e.field, mont: big.NewInt(0)}
	}
	neg := new(big.Int).Sub(e.field.prime.p, e.mont)
	return &modularElement{field: e.field, mont: neg}
}

func (e *modularElement) Invert() (Element, error) {
	c := e.canonical()
	if c.Sign() == 0 {
		return nil, ErrNotInvertible
	}
	inv := new(big.Int).ModInverse(c, e.field.prime.p)
	if inv == nil {
		return nil, ErrNotInvertible
	}
	return e.field.fromCanonical(inv), nil
}

func (e *modularElement) Pow(exp uint64) Element {
	c := e.canonical()
	r := new(big.Int).Exp(c, new(big.Int).SetUint64(exp), e.field.prime.p)
	return e.field.fromCanonical(r)
}

func (e *modularElement) bitwise(o Element, op func(a, b *big.Int) *big.Int) Element {
	oe := e.mustSame(o)
	r := op(e.canonical(), oe.canonical())
	r.Mod(r, e.field.prime.p)
	return e.field.fromCanonical(r)
}

func (e *modularElement) And(o Element) Element {
	return e.bitwise(o, func(a, b *big.Int) *big.Int { return new(big.Int).And(a, b) })
}

func (e *modularElement) Or(o Element) Element {
	return e.bitwise(o, func(a, b *big.Int) *big.Int { return new(big.Int).Or(a, b) })
}

func (e *modularElement) Xor(o Element) Element {
	return e.bitwise(o, func(a, b *big.Int) *big.Int { return new(big.Int).Xor(a, b) })
}

func (e *modularElement) Shl(n uint) Element {
	r := new(big.Int).Lsh(e.canonical(), n)
	r.Mod(r, e.field.prime.p)
	return e.field.fromCanonical(r)
}

func (e *modularElement) Shr(n uint) Element {
	r := new(big.Int).Rsh(e.canonical(), n)
	return e.field.fromCanonical(r)
}

func (e *modularElement) Equal(o Element) bool {
	oe, ok := o.(*modularElement)
	if !ok || oe.field != e.field {
		return false
	}
	return e.mont.Cmp(oe.mont) == 0
}

func (e *modularElement) IsZero() bool { return e.mont.Sign() == 0 }

func (e *modularElement) IsOne() bool { return e.canonical().Cmp(big.NewInt(1)) == 0 }

func (e *modularElement) Uint64() uint64 {
	c := e.canonical()
	// canonical() is reduced mod p already; for fields wider than 64
	// bits this truncates to the low 64 bits, matching the Ci register
	// interop contract.
	low := new(big.Int).And(c, new(big.Int).SetUint64(^uint64(0)))
	return low.Uint64()
}

// Pack implements Packer: a fixed word64_size*8-byte big-endian
// encoding of the canonical (non-Montgomery) residue, independent of
// the internal representation.
func (e *modularElement) Pack(dst []byte) []byte {
	c := e.canonical()
	size := e.field.Size()
	buf := make([]byte, size)
	c.FillBytes(buf)
	return append(dst, buf...)
}

// Unpack implements Packer.
func (e *modularElement) Unpack(src []byte) ([]byte, error) {
	size := e.field.Size()
	if len(src) < size {
		return nil, fmt.Errorf("field: short buffer unpacking modular element: need %d, have %d", size, len(src))
	}
	v := new(big.Int).SetBytes(src[:size])
	e.mont = e.field.toMontgomery(v)
	return src[size:], nil
}

func (e *modularElement) String() string {
	return e.canonical().String()
}

func (e *modularElement) mustSame(o Element) *modularElement {
	oe, ok := o.(*modularElement)
	if !ok || oe.field != e.field {
		panic(fmt.Sprintf("field: mixed field kinds in operation: %T vs %T", e, o))
	}
	return oe
}

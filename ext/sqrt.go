package ext

import (
	"math/big"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/field"
)

// Fp2Legendre reports whether e is a square in Fp2 (zero counts as a
// square), via e^((p^2-1)/2) == 1 — the same exponentiation test
// field.ComputeLegendre runs one tower level down (field/sqrt.go),
// generalized to the order of Fp2's multiplicative group.
func Fp2Legendre(e *Fp2) bool {
	if e.IsZero() {
		return true
	}
	half := new(big.Int).Rsh(fp2GroupOrderMinus1(e.ext), 1)
	return Fp2Equal(fp2PowBig(e, half), Fp2One(e.ext))
}

// Fp2Sqrt computes a square root of e in Fp2 via generic Tonelli-Shanks
// over Fp2's cyclic multiplicative group, the same algorithm
// field.sqrtTonelliShanks runs over Fp directly, lifted one tower level:
// the group order is p^2-1 instead of p-1, and every group operation is
// Fp2Mul/Fp2Sqr instead of field.Mul/field.Square. Returns (nil, false)
// if e is a non-zero non-residue.
func Fp2Sqrt(e *Fp2) (*Fp2, bool) {
	if e.IsZero() {
		return Fp2Zero(e.ext), true
	}
	if !Fp2Legendre(e) {
		return nil, false
	}

	qMinus1 := fp2GroupOrderMinus1(e.ext)
	s := 0
	t := new(big.Int).Set(qMinus1)
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		s++
	}

	z := fp2FindNonResidue(e.ext)
	c := fp2PowBig(z, t)

	tExp := new(big.Int).Rsh(new(big.Int).Add(t, big.NewInt(1)), 1)
	r := fp2PowBig(e, tExp)
	tt := fp2PowBig(e, t)
	m := s

	one := Fp2One(e.ext)
	for {
		if Fp2Equal(tt, one) {
			return r, true
		}
		i := 0
		tmp := tt
		for !Fp2Equal(tmp, one) {
			tmp = Fp2Sqr(tmp)
			i++
			if i == m {
				return nil, false
			}
		}
		b := c
		for k := 0; k < m-i-1; k++ {
			b = Fp2Sqr(b)
		}
		r = Fp2Mul(r, b)
		c = Fp2Sqr(b)
		tt = Fp2Mul(tt, c)
		m = i
	}
}

func fp2GroupOrderMinus1(x *Ext2) *big.Int {
	p := x.base.ModulusBig()
	p2 := new(big.Int).Mul(p, p)
	return p2.Sub(p2, big.NewInt(1))
}

func fp2FindNonResidue(x *Ext2) *Fp2 {
	for i := uint64(2); ; i++ {
		c0 := smallElement(x.base, i)
		cand := NewFp2(x, c0, field.One(x.base))
		if !Fp2Legendre(cand) {
			return cand
		}
	}
}

// Fp3Legendre and Fp3Sqrt mirror Fp2Legendre/Fp2Sqrt one cubic-extension
// level over, for MNT6's Fp3-coordinate G2.
func Fp3Legendre(e *Fp3) bool {
	if e.IsZero() {
		return true
	}
	half := new(big.Int).Rsh(fp3GroupOrderMinus1(e.ext), 1)
	return Fp3Equal(fp3PowBig(e, half), Fp3One(e.ext))
}

func Fp3Sqrt(e *Fp3) (*Fp3, bool) {
	if e.IsZero() {
		return Fp3Zero(e.ext), true
	}
	if !Fp3Legendre(e) {
		return nil, false
	}

	qMinus1 := fp3GroupOrderMinus1(e.ext)
	s := 0
	t := new(big.Int).Set(qMinus1)
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		s++
	}

	z := fp3FindNonResidue(e.ext)
	c := fp3PowBig(z, t)

	tExp := new(big.Int).Rsh(new(big.Int).Add(t, big.NewInt(1)), 1)
	r := fp3PowBig(e, tExp)
	tt := fp3PowBig(e, t)
	m := s

	one := Fp3One(e.ext)
	for {
		if Fp3Equal(tt, one) {
			return r, true
		}
		i := 0
		tmp := tt
		for !Fp3Equal(tmp, one) {
			tmp = Fp3Sqr(tmp)
			i++
			if i == m {
				return nil, false
			}
		}
		b := c
		for k := 0; k < m-i-1; k++ {
			b = Fp3Sqr(b)
		}
		r = Fp3Mul(r, b)
		c = Fp3Sqr(b)
		tt = Fp3Mul(tt, c)
		m = i
	}
}

func fp3GroupOrderMinus1(x *Ext3) *big.Int {
	p := x.base.ModulusBig()
	p3 := new(big.Int).Mul(new(big.Int).Mul(p, p), p)
	return p3.Sub(p3, big.NewInt(1))
}

func fp3FindNonResidue(x *Ext3) *Fp3 {
	for i := uint64(2); ; i++ {
		c0 := smallElement(x.base, i)
		cand := NewFp3(x, c0, field.One(x.base), field.Zero(x.base))
		if !Fp3Legendre(cand) {
			return cand
		}
	}
}

func smallElement(f *field.Field, v uint64) *field.Element {
	limbs := bigint.New(f.Limbs())
	limbs[0] = v
	if bigint.Cmp(limbs, f.Modulus()) >= 0 {
		limbs = bigint.New(f.Limbs())
		limbs[0] = 1
	}
	return field.FromCanonical(f, limbs)
}

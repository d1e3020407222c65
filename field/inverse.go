package field

import "github.com/ecengine/ecengine/bigint"

// Inverse computes e^-1, returning (nil, false) iff e is zero.
//
// This is the binary extended GCD variant from Guajardo, Kumar, Paar and
// Pelzl, "Efficient Software-Implementation of Finite Fields with
// Applications to Cryptography", Algorithm 16 (BEA for Inversion in Fp),
// grounded directly on original_source/src/fp.rs's `inverse` method: seed
// b with R^2 to absorb the Montgomery factor so the result comes out
// already in Montgomery form, since a standard BEA inverse of a
// Montgomery-form input would otherwise need an extra R^2 multiplication
// at the end.
//
// spec.md §9's Open Question about an "old" vs a "new" Montgomery inverse
// is resolved here by using only this classic binary-GCD path.
func Inverse(e *Element) (*Element, bool) {
	if e.IsZero() {
		return nil, false
	}

	f := e.field
	n := f.limbs

	one := bigint.New(n)
	one[0] = 1

	u := e.repr.Clone()
	v := f.modulus.Clone()

	b := &Element{field: f, repr: f.r2.Clone()}
	c := Zero(f)

	for bigint.Cmp(u, one) != 0 && bigint.Cmp(v, one) != 0 {
		for u.IsEven() {
			u.Div2()
			if b.repr.IsEven() {
				b.repr.Div2()
			} else {
				b.repr.AddNoCarry(f.modulus)
				b.repr.Div2()
			}
		}

		for v.IsEven() {
			v.Div2()
			if c.repr.IsEven() {
				c.repr.Div2()
			} else {
				c.repr.AddNoCarry(f.modulus)
				c.repr.Div2()
			}
		}

		if bigint.Cmp(v, u) < 0 {
			u.SubNoBorrow(v)
			b = Sub(b, c)
		} else {
			v.SubNoBorrow(u)
			c = Sub(c, b)
		}
	}

	if bigint.Cmp(u, one) == 0 {
		return b, true
	}
	return c, true
}

package field

import "github.com/ecengine/ecengine/bigint"

// Element is an Fp element held in Montgomery form (xR mod p). It carries a
// reference to its Field so every operation knows p and the Montgomery
// constant, mirroring spec.md §3's "element carries a reference to its
// field" data model. The stored repr is always strictly less than p.
type Element struct {
	field *Field
	repr  bigint.FixedUint
}

// Zero returns the additive identity of f.
func Zero(f *Field) *Element {
	return &Element{field: f, repr: bigint.New(f.limbs)}
}

// One returns the multiplicative identity of f (Montgomery form of 1 is R).
func One(f *Field) *Element {
	return &Element{field: f, repr: f.r.Clone()}
}

// FromBytes decodes a big-endian field element and converts it into
// Montgomery form. Returns an error if the value is not strictly less than
// the modulus.
func FromBytes(f *Field, be []byte) (*Element, error) {
	repr := bigint.FromBytesBE(be, f.limbs)
	if bigint.Cmp(repr, f.modulus) >= 0 {
		return nil, errNotInField
	}
	e := &Element{field: f, repr: repr}
	e.repr = bigint.MontMul(e.repr, f.r2, f.modulus, f.inv)
	return e, nil
}

// FromCanonical wraps canonical (non-Montgomery) limbs already known to be
// less than the modulus, converting them into Montgomery form.
func FromCanonical(f *Field, canonical bigint.FixedUint) *Element {
	repr := bigint.MontMul(canonical, f.r2, f.modulus, f.inv)
	return &Element{field: f, repr: repr}
}

// Field returns the element's field.
func (e *Element) Field() *Field { return e.field }

// Clone returns an independent copy.
func (e *Element) Clone() *Element {
	return &Element{field: e.field, repr: e.repr.Clone()}
}

// Bytes returns the canonical (non-Montgomery) big-endian encoding, sized
// to the field's limb width (8 bytes per limb).
func (e *Element) Bytes() []byte {
	canon := e.ToCanonical()
	return canon.ToBytesBE(e.field.limbs * 8)
}

// ToCanonical converts out of Montgomery form: repr * R^-1 mod p, computed
// as mont_mul(repr, 1).
func (e *Element) ToCanonical() bigint.FixedUint {
	one := bigint.New(e.field.limbs)
	one[0] = 1
	return bigint.MontMul(e.repr, one, e.field.modulus, e.field.inv)
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	return e.repr.IsZero()
}

// Equal reports whether e and o represent the same field element.
func Equal(e, o *Element) bool {
	return bigint.Cmp(e.repr, o.repr) == 0
}

// Add returns e + o.
func Add(e, o *Element) *Element {
	r := e.repr.Clone()
	r.AddNoCarry(o.repr)
	if bigint.Cmp(r, e.field.modulus) >= 0 {
		r.SubNoBorrow(e.field.modulus)
	}
	return &Element{field: e.field, repr: r}
}

// Double returns 2*e.
func Double(e *Element) *Element {
	r := e.repr.Clone()
	r.Mul2()
	if bigint.Cmp(r, e.field.modulus) >= 0 {
		r.SubNoBorrow(e.field.modulus)
	}
	return &Element{field: e.field, repr: r}
}

// Sub returns e - o.
func Sub(e, o *Element) *Element {
	r := e.repr.Clone()
	if bigint.Cmp(o.repr, r) > 0 {
		r.AddNoCarry(e.field.modulus)
	}
	r.SubNoBorrow(o.repr)
	return &Element{field: e.field, repr: r}
}

// Neg returns -e (or zero, if e is zero).
func Neg(e *Element) *Element {
	if e.IsZero() {
		return Zero(e.field)
	}
	r := e.field.modulus.Clone()
	r.SubNoBorrow(e.repr)
	return &Element{field: e.field, repr: r}
}

// Mul returns e * o.
func Mul(e, o *Element) *Element {
	return &Element{field: e.field, repr: bigint.MontMul(e.repr, o.repr, e.field.modulus, e.field.inv)}
}

// Square returns e^2.
func Square(e *Element) *Element {
	return &Element{field: e.field, repr: bigint.MontSquare(e.repr, e.field.modulus, e.field.inv)}
}

// Pow returns e^exp using MSB-first square-and-multiply over the canonical
// bit representation of exp (spec.md §4.2's pow).
func Pow(e *Element, exp bigint.FixedUint) *Element {
	res := One(e.field)
	foundOne := false
	for i := exp.BitLen() - 1; i >= 0; i-- {
		bit := exp.Bit(i)
		if foundOne {
			res = Square(res)
		} else {
			foundOne = bit == 1
		}
		if bit == 1 {
			res = Mul(res, e)
		}
	}
	return res
}

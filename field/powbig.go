package field

import "math/big"

// PowBig raises e to an arbitrarily large exponent given as a math/big.Int.
//
// Frobenius-coefficient construction (spec.md §4.3's "optimized path": a
// single exponentiation v^{(p^i-1)/d}) needs exponents on the order of
// i*bitlen(p), which can exceed the field's own fixed limb width once i
// climbs past 2 or 3 (Fp12's Frobenius power can reach 11). FixedUint's
// width is sized to hold field *elements*, not these construction-time
// exponents, so this one helper reaches for math/big purely as an exponent
// counter — every multiplication it performs still happens in the runtime
// field via Mul/Square. This is a one-time cost paid once per extension
// construction, never on the hot path.
func PowBig(e *Element, exp *big.Int) *Element {
	res := One(e.field)
	if exp.Sign() == 0 {
		return res
	}
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

// ModulusBig returns the field's modulus as a math/big.Int, for use in
// construction-time exponent arithmetic (Frobenius tables, loop-parameter
// bookkeeping). Never used on the per-element hot path.
func (f *Field) ModulusBig() *big.Int {
	return new(big.Int).SetBytes(f.modulus.ToBytesBE(f.limbs * 8))
}

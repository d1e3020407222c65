package bigint

import "math/bits"

// MontMul computes a*b*R^-1 mod p using the CIOS (Coarsely Integrated
// Operand Scanning) algorithm, specialized to the runtime limb width
// len(p). Inputs must already be < p; the result is guaranteed < p.
//
// This is the Go rendering of the mont_mul primitive, grounded on the
// REDC step used throughout original_source/src/fp.rs (mont_mul_assign /
// mont_square), written here as CIOS so multiply and reduce interleave
// limb-by-limb instead of needing a separate 2N-limb product buffer.
func MontMul(a, b, p FixedUint, inv uint64) FixedUint {
	n := len(p)
	t := make([]uint64, n+2)

	for i := 0; i < n; i++ {
		// t += a[i] * b
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			lo, c := bits.Add64(lo, t[j], 0)
			hi, _ = bits.Add64(hi, 0, c)
			lo, c = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, c)
			t[j] = lo
			carry = hi
		}
		t[n], carry = bits.Add64(t[n], carry, 0)
		t[n+1] += carry

		// m = t[0] * inv mod 2^64
		m := t[0] * inv

		// t += m * p, then shift right by one limb
		carry = 0
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(m, p[j])
			lo, c := bits.Add64(lo, t[j], 0)
			hi, _ = bits.Add64(hi, 0, c)
			lo, c = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, c)
			t[j] = lo
			carry = hi
		}
		t[n], carry = bits.Add64(t[n], carry, 0)
		t[n+1] += carry

		copy(t[0:], t[1:])
		t[n+1] = 0
	}

	result := FixedUint(t[0:n])
	if t[n] != 0 || Cmp(result, p) >= 0 {
		result.SubNoBorrow(p)
	}
	out := New(n)
	copy(out, result)
	return out
}

// MontSquare computes a*a*R^-1 mod p.
func MontSquare(a, p FixedUint, inv uint64) FixedUint {
	return MontMul(a, a, p, inv)
}

// MontConstants computes R mod p, R^2 mod p, and -p^-1 mod 2^64 for a field
// with modulus p of width n limbs, where R = 2^(64n).
//
// -p^-1 mod 2^64 is derived via Newton's iteration for modular inverse mod
// a power of two (x_{k+1} = x_k*(2 - p*x_k) mod 2^(2^k)), the standard
// technique also used to seed the "old" fast Montgomery setup that
// spec.md §9's Open Questions mention; we use only this, well-understood
// path and do not carry the experimental "new" variant forward.
func MontConstants(p FixedUint) (r, r2 FixedUint, inv uint64) {
	n := len(p)

	inv = uint64(1)
	for i := 0; i < 6; i++ {
		inv = inv * (2 - p[0]*inv)
	}
	inv = -inv

	// R mod p: compute 2^(64n) mod p by repeated doubling-with-reduce.
	r = New(n)
	r[0] = 1
	for i := 0; i < 64*n; i++ {
		r.Mul2()
		if Cmp(r, p) >= 0 {
			r.SubNoBorrow(p)
		}
	}

	// R^2 mod p: square (via repeated doubling) R mod p another 64n times
	// using the same doubling trick, equivalent to computing R mod p then
	// repeating the "double 64n times" construction starting from R mod p
	// instead of from 1.
	r2 = r.Clone()
	for i := 0; i < 64*n; i++ {
		r2.Mul2()
		if Cmp(r2, p) >= 0 {
			r2.SubNoBorrow(p)
		}
	}

	return r, r2, inv
}

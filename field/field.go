// Package field implements Fp, the prime field in Montgomery form whose
// modulus is known only at runtime (spec layer L1).
package field

import (
	"github.com/ecengine/ecengine/bigint"
)

// Field is an immutable descriptor for F(p), constructed once per call from
// the parsed modulus bytes. Invariants: p is odd, p >= 3, p < 2^(64*limbs).
type Field struct {
	modulus bigint.FixedUint
	r       bigint.FixedUint // R mod p
	r2      bigint.FixedUint // R^2 mod p
	inv     uint64           // -p^-1 mod 2^64
	limbs   int
	bitLen  int
}

// New constructs a Field from a modulus given as a FixedUint of the chosen
// limb width. It does not validate p is prime (the engine trusts
// well-formed input per spec.md §1); it does enforce the structural
// invariants spec.md §3 lists for Field: odd, >= 3, and within range.
// "Within range" here means the top limb keeps at least one spare bit
// (p < 2^(64N-1)): every no-carry/no-borrow operation beneath this layer
// relies on sums of reduced values fitting in N limbs, so the width
// chosen for a modulus must always leave that headroom (see
// bigint.WidthForBits).
func New(modulus bigint.FixedUint) (*Field, error) {
	if modulus.IsZero() {
		return nil, errZeroModulus
	}
	if modulus.IsEven() {
		return nil, errEvenModulus
	}
	three := bigint.New(len(modulus))
	three[0] = 3
	if bigint.Cmp(modulus, three) < 0 {
		return nil, errModulusTooSmall
	}
	if modulus.BitLen() == 64*len(modulus) {
		return nil, errModulusFullWidth
	}

	r, r2, inv := bigint.MontConstants(modulus)
	return &Field{
		modulus: modulus,
		r:       r,
		r2:      r2,
		inv:     inv,
		limbs:   len(modulus),
		bitLen:  modulus.BitLen(),
	}, nil
}

// Limbs returns the limb width this field was constructed with.
func (f *Field) Limbs() int { return f.limbs }

// BitLen returns the bit length of the modulus.
func (f *Field) BitLen() int { return f.bitLen }

// Modulus returns the raw modulus limbs (read-only; callers must not
// mutate the returned slice).
func (f *Field) Modulus() bigint.FixedUint { return f.modulus }

// Mod4 returns p mod 4, used to select the square-root algorithm.
func (f *Field) Mod4() uint64 {
	return f.modulus[0] & 3
}

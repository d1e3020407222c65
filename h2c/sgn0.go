// Package h2c implements mapping field elements onto a curve
// (map_to_curve) and the full hash_to_curve construction built on top of
// it, for both the base field (G1) and the quadratic-extension twist
// (G2).
//
// Grounded on bls12381_map.go and hash_to_curve.go: those files' doc
// comments describe the RFC 9380 Simplified-SWU-plus-isogeny
// construction, but the implementation they actually ship is simpler —
// Shallue-van de Woestijne try-and-increment, sharing RFC 9380's
// expand_message_xmd and sign-of-y conventions without the isogeny
// machinery. This package follows what that code actually does,
// generalized from BLS12-381's fixed (p, a, b) to a runtime curve,
// because the try-and-increment map needs nothing beyond the field
// square root this module already has at every tower level (field.Sqrt,
// ext.Fp2Sqrt, ext.Fp3Sqrt), while a true isogeny map would need a
// per-curve-family precomputed isogeny table with no defined equivalent
// for the runtime-parameterized case (see DESIGN.md).
package h2c

import (
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// Sgn0Fp returns the canonical sign bit of a base-field element: the
// parity of its canonical integer representative.
func Sgn0Fp(e *field.Element) uint {
	return e.ToCanonical().Bit(0)
}

// Sgn0Fp2 returns the canonical sign bit of an Fp2 element: the sign of
// c0, falling through to c1 if c0 is zero.
func Sgn0Fp2(e *ext.Fp2) uint {
	if !e.C0().IsZero() {
		return Sgn0Fp(e.C0())
	}
	return Sgn0Fp(e.C1())
}

// Sgn0Fp3 extends the same convention to Fp3, walking c0, then c1, then
// c2 until a nonzero coordinate fixes the sign — MNT6's G2 coordinate
// type needs a third case beyond Fp and Fp2, so this applies the same
// "first nonzero coordinate" rule one limb further.
func Sgn0Fp3(e *ext.Fp3) uint {
	if !e.C0().IsZero() {
		return Sgn0Fp(e.C0())
	}
	if !e.C1().IsZero() {
		return Sgn0Fp(e.C1())
	}
	return Sgn0Fp(e.C2())
}

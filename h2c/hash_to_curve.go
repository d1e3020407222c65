package h2c

import (
	"crypto/sha256"
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ecerr"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/pairing"
)

// expandMessageXMD is RFC 9380 Section 5.3.1's expand_message_xmd with
// SHA-256, lifted unchanged from hash_to_curve.go (the construction
// doesn't depend on curve or field parameters at all).
func expandMessageXMD(msg, dst []byte, lenInBytes int) ([]byte, error) {
	const bInBytes = 32
	const rInBytes = 64

	ell := (lenInBytes + bInBytes - 1) / bInBytes
	if ell > 255 {
		return nil, ecerr.New(ecerr.InputError, "expand_message_xmd: output too large")
	}
	if len(dst) > 255 {
		return nil, ecerr.New(ecerr.InputError, "expand_message_xmd: DST too long")
	}

	dstPrime := make([]byte, len(dst)+1)
	copy(dstPrime, dst)
	dstPrime[len(dst)] = byte(len(dst))

	zPad := make([]byte, rInBytes)
	libStr := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	h := sha256.New()
	h.Write(zPad)
	h.Write(msg)
	h.Write(libStr)
	h.Write([]byte{0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h.Reset()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	b1 := h.Sum(nil)

	uniform := make([]byte, 0, lenInBytes+bInBytes)
	uniform = append(uniform, b1...)
	bPrev := b1

	for i := 2; i <= ell; i++ {
		xored := make([]byte, bInBytes)
		for j := 0; j < bInBytes; j++ {
			xored[j] = b0[j] ^ bPrev[j]
		}
		h.Reset()
		h.Write(xored)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi := h.Sum(nil)
		uniform = append(uniform, bi...)
		bPrev = bi
	}
	return uniform[:lenInBytes], nil
}

// fieldElementLen returns L = ceil((bitLen(p)+128)/8), the number of
// pseudo-random bytes derived per base-field coordinate before reduction
// mod p (RFC 9380 Section 5.2's security-margin rule, generalized from
// BLS12-381's fixed L=64 to whatever L the runtime modulus needs).
func fieldElementLen(f *field.Field) int {
	return (f.BitLen() + 128 + 7) / 8
}

func hashToFieldElements(f *field.Field, msg, dst []byte, count int) ([]*field.Element, error) {
	l := fieldElementLen(f)
	uniform, err := expandMessageXMD(msg, dst, l*count)
	if err != nil {
		return nil, err
	}
	modulus := f.ModulusBig()
	modLen := (f.BitLen() + 7) / 8

	out := make([]*field.Element, count)
	for i := 0; i < count; i++ {
		chunk := uniform[i*l : (i+1)*l]
		v := new(big.Int).SetBytes(chunk)
		v.Mod(v, modulus)

		be := v.Bytes()
		buf := make([]byte, modLen)
		copy(buf[modLen-len(be):], be)

		e, err := field.FromBytes(f, buf)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// HashToG1 is the full hash_to_curve construction for the base field:
// hash to two field elements, map each to a curve point, add them. This
// is the indifferentiable (random-oracle) variant; MapToG1 alone is
// encode_to_curve's faster, non-uniform cousin.
func HashToG1(c *curve.Curve, msg, dst []byte) (*curve.Point, error) {
	us, err := hashToFieldElements(c.Field(), msg, dst, 2)
	if err != nil {
		return nil, err
	}
	q0 := MapToG1(c, us[0])
	q1 := MapToG1(c, us[1])
	return curve.Add(q0, q1), nil
}

// HashToG2 is HashToG1 over the Fp2-coordinate twist.
func HashToG2(tc *pairing.TwistCurve2, msg, dst []byte) (*pairing.Point2, error) {
	base := tc.Ext2().Base()
	us, err := hashToFieldElements(base, msg, dst, 4)
	if err != nil {
		return nil, err
	}
	u0 := ext.NewFp2(tc.Ext2(), us[0], us[1])
	u1 := ext.NewFp2(tc.Ext2(), us[2], us[3])
	q0 := MapToG2(tc, u0)
	q1 := MapToG2(tc, u1)
	return pairing.Add2(q0, q1), nil
}

// HashToG2Cubic is HashToG1 over the Fp3-coordinate twist MNT6's G2 lives
// on.
func HashToG2Cubic(tc *pairing.TwistCurve3, msg, dst []byte) (*pairing.Point3, error) {
	base := tc.Ext3().Base()
	us, err := hashToFieldElements(base, msg, dst, 6)
	if err != nil {
		return nil, err
	}
	u0 := ext.NewFp3(tc.Ext3(), us[0], us[1], us[2])
	u1 := ext.NewFp3(tc.Ext3(), us[3], us[4], us[5])
	q0 := MapToG2Cubic(tc, u0)
	q1 := MapToG2Cubic(tc, u1)
	return pairing.Add3(q0, q1), nil
}

package dispatch

import (
	"math/big"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/ecerr"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/pairing"
)

// twistBase2/twistBase3 hold what every G2 operation needs once the
// degree-2 (BN/BLS12/MNT4) or degree-3 (MNT6) extension has been parsed:
// "extension_degree(1) | non_residue_be(modulus_len)" inserted before A/B.
type twistBase2 struct {
	x2         *ext.Ext2
	curve      *pairing.TwistCurve2
	order      *big.Int
	modulusLen int
	orderLen   int
}

type twistBase3 struct {
	x3         *ext.Ext3
	curve      *pairing.TwistCurve3
	order      *big.Int
	modulusLen int
	orderLen   int
}

// parseExtPrefix reads the shared modulus + extension-degree prefix
// required before A/B for extension-field curves: "extension_degree(1)
// | non_residue_be(modulus_len)". It returns the base field, the modulus
// byte length and the degree, leaving the cursor positioned right after
// the degree byte so a degree-specific parser can continue with the
// non-residue and A/B coefficients.
func parseExtPrefix(c *cursor) (f *field.Field, modulusLen int, degree byte, err error) {
	modulusBytes, err := c.lenPrefixed()
	if err != nil {
		return nil, 0, 0, err
	}
	limbs := bigint.WidthForBits(new(big.Int).SetBytes(modulusBytes).BitLen())
	if limbs == 0 {
		return nil, 0, 0, ecerr.New(ecerr.InputError, "modulus of %d bytes exceeds the widest supported limb width", len(modulusBytes))
	}
	modulus := bigint.FromBytesBE(modulusBytes, limbs)
	f, ferr := field.New(modulus)
	if ferr != nil {
		return nil, 0, 0, ecerr.New(ecerr.UnexpectedZero, "%s", ferr.Error())
	}
	degree, err = c.byte()
	if err != nil {
		return nil, 0, 0, err
	}
	if degree != 2 && degree != 3 {
		return nil, 0, 0, ecerr.New(ecerr.UnknownParameter, "extension degree %d is not 2 or 3", degree)
	}
	return f, len(modulusBytes), degree, nil
}

// parseTwist2 continues parsing from right after parseExtPrefix has
// already confirmed degree == 2.
func parseTwist2(c *cursor, f *field.Field, modulusLen int) (*twistBase2, error) {
	nrBytes, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	nr, err := field.FromBytes(f, nrBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "non-residue: %s", err.Error())
	}
	x2 := ext.NewExt2(f, nr)

	a2, err := fp2Elem(c, x2, modulusLen)
	if err != nil {
		return nil, err
	}
	b2, err := fp2Elem(c, x2, modulusLen)
	if err != nil {
		return nil, err
	}
	tc := pairing.NewTwistCurve2(x2, a2, b2)

	orderBytes, err := c.lenPrefixed()
	if err != nil {
		return nil, err
	}
	order := new(big.Int).SetBytes(orderBytes)
	if order.Sign() == 0 {
		return nil, ecerr.New(ecerr.UnexpectedZero, "subgroup order is zero")
	}

	return &twistBase2{x2: x2, curve: tc, order: order, modulusLen: modulusLen, orderLen: len(orderBytes)}, nil
}

// parseTwist3 continues parsing from right after parseExtPrefix has
// already confirmed degree == 3.
func parseTwist3(c *cursor, f *field.Field, modulusLen int) (*twistBase3, error) {
	nrBytes, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	nr, err := field.FromBytes(f, nrBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "non-residue: %s", err.Error())
	}
	x3 := ext.NewExt3(f, nr)

	a3, err := fp3Elem(c, x3, modulusLen)
	if err != nil {
		return nil, err
	}
	b3, err := fp3Elem(c, x3, modulusLen)
	if err != nil {
		return nil, err
	}
	tc := pairing.NewTwistCurve3(x3, a3, b3)

	orderBytes, err := c.lenPrefixed()
	if err != nil {
		return nil, err
	}
	order := new(big.Int).SetBytes(orderBytes)
	if order.Sign() == 0 {
		return nil, ecerr.New(ecerr.UnexpectedZero, "subgroup order is zero")
	}

	return &twistBase3{x3: x3, curve: tc, order: order, modulusLen: modulusLen, orderLen: len(orderBytes)}, nil
}

func fp2Elem(c *cursor, x2 *ext.Ext2, modulusLen int) (*ext.Fp2, error) {
	c0b, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	c1b, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	c0, err := field.FromBytes(x2.Base(), c0b)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "fp2 c0: %s", err.Error())
	}
	c1, err := field.FromBytes(x2.Base(), c1b)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "fp2 c1: %s", err.Error())
	}
	return ext.NewFp2(x2, c0, c1), nil
}

func fp3Elem(c *cursor, x3 *ext.Ext3, modulusLen int) (*ext.Fp3, error) {
	c0b, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	c1b, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	c2b, err := c.take(modulusLen)
	if err != nil {
		return nil, err
	}
	c0, err := field.FromBytes(x3.Base(), c0b)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "fp3 c0: %s", err.Error())
	}
	c1, err := field.FromBytes(x3.Base(), c1b)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "fp3 c1: %s", err.Error())
	}
	c2, err := field.FromBytes(x3.Base(), c2b)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "fp3 c2: %s", err.Error())
	}
	return ext.NewFp3(x3, c0, c1, c2), nil
}

func fp2Bytes(e *ext.Fp2, modulusLen int) []byte {
	out := make([]byte, 0, 2*modulusLen)
	out = append(out, elementBytes(e.C0(), modulusLen)...)
	out = append(out, elementBytes(e.C1(), modulusLen)...)
	return out
}

func fp3Bytes(e *ext.Fp3, modulusLen int) []byte {
	out := make([]byte, 0, 3*modulusLen)
	out = append(out, elementBytes(e.C0(), modulusLen)...)
	out = append(out, elementBytes(e.C1(), modulusLen)...)
	out = append(out, elementBytes(e.C2(), modulusLen)...)
	return out
}

func g2Point2(c *cursor, tb *twistBase2) (*pairing.Point2, error) {
	x, err := fp2Elem(c, tb.x2, tb.modulusLen)
	if err != nil {
		return nil, err
	}
	y, err := fp2Elem(c, tb.x2, tb.modulusLen)
	if err != nil {
		return nil, err
	}
	p := pairing.FromAffine2(tb.curve, x, y)
	if !inGasMetering && !pairing.IsOnCurve2(tb.curve, x, y) {
		return nil, ecerr.New(ecerr.InputError, "g2 point is not on curve")
	}
	return p, nil
}

func g2Point3(c *cursor, tb *twistBase3) (*pairing.Point3, error) {
	x, err := fp3Elem(c, tb.x3, tb.modulusLen)
	if err != nil {
		return nil, err
	}
	y, err := fp3Elem(c, tb.x3, tb.modulusLen)
	if err != nil {
		return nil, err
	}
	p := pairing.FromAffine3(tb.curve, x, y)
	if !inGasMetering && !pairing.IsOnCurve3(tb.curve, x, y) {
		return nil, ecerr.New(ecerr.InputError, "g2 point is not on curve")
	}
	return p, nil
}

func encodeG2Point2(p *pairing.Point2, modulusLen int) []byte {
	x, y := p.ToAffine()
	out := make([]byte, 0, 4*modulusLen)
	out = append(out, fp2Bytes(x, modulusLen)...)
	out = append(out, fp2Bytes(y, modulusLen)...)
	return out
}

func encodeG2Point3(p *pairing.Point3, modulusLen int) []byte {
	x, y := p.ToAffine()
	out := make([]byte, 0, 6*modulusLen)
	out = append(out, fp3Bytes(x, modulusLen)...)
	out = append(out, fp3Bytes(y, modulusLen)...)
	return out
}

// handleG2Add/Mul/Multiexp dispatch on the extension degree read from the
// blob: degree 2 (BN/BLS12/MNT4 shape) or degree 3 (MNT6 shape).
func handleG2Add(c *cursor) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree == 3 {
		tb, err := parseTwist3(c, f, modulusLen)
		if err != nil {
			return nil, err
		}
		p, err := g2Point3(c, tb)
		if err != nil {
			return nil, err
		}
		q, err := g2Point3(c, tb)
		if err != nil {
			return nil, err
		}
		return encodeG2Point3(pairing.Add3(p, q), tb.modulusLen), nil
	}
	tb, err := parseTwist2(c, f, modulusLen)
	if err != nil {
		return nil, err
	}
	p, err := g2Point2(c, tb)
	if err != nil {
		return nil, err
	}
	q, err := g2Point2(c, tb)
	if err != nil {
		return nil, err
	}
	return encodeG2Point2(pairing.Add2(p, q), tb.modulusLen), nil
}

func handleG2Mul(c *cursor) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree == 3 {
		tb, err := parseTwist3(c, f, modulusLen)
		if err != nil {
			return nil, err
		}
		p, err := g2Point3(c, tb)
		if err != nil {
			return nil, err
		}
		k, err := twistScalar3(c, tb)
		if err != nil {
			return nil, err
		}
		return encodeG2Point3(pairing.ScalarMul3(p, k), tb.modulusLen), nil
	}
	tb, err := parseTwist2(c, f, modulusLen)
	if err != nil {
		return nil, err
	}
	p, err := g2Point2(c, tb)
	if err != nil {
		return nil, err
	}
	k, err := twistScalar2(c, tb)
	if err != nil {
		return nil, err
	}
	return encodeG2Point2(pairing.ScalarMul2(p, k), tb.modulusLen), nil
}

func twistScalar2(c *cursor, tb *twistBase2) (*big.Int, error) {
	b, err := c.take(tb.orderLen)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func twistScalar3(c *cursor, tb *twistBase3) (*big.Int, error) {
	b, err := c.take(tb.orderLen)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func handleG2Multiexp(c *cursor) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree == 3 {
		tb, err := parseTwist3(c, f, modulusLen)
		if err != nil {
			return nil, err
		}
		count, err := c.byte()
		if err != nil {
			return nil, err
		}
		r := pairing.Infinity3(tb.curve)
		if count == 0 {
			return nil, ecerr.New(ecerr.InputError, "multiexp requires at least one pair")
		}
		for i := 0; i < int(count); i++ {
			p, err := g2Point3(c, tb)
			if err != nil {
				return nil, err
			}
			k, err := twistScalar3(c, tb)
			if err != nil {
				return nil, err
			}
			r = pairing.Add3(r, pairing.ScalarMul3(p, k))
		}
		return encodeG2Point3(r, tb.modulusLen), nil
	}
	tb, err := parseTwist2(c, f, modulusLen)
	if err != nil {
		return nil, err
	}
	count, err := c.byte()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ecerr.New(ecerr.InputError, "multiexp requires at least one pair")
	}
	r := pairing.Infinity2(tb.curve)
	for i := 0; i < int(count); i++ {
		p, err := g2Point2(c, tb)
		if err != nil {
			return nil, err
		}
		k, err := twistScalar2(c, tb)
		if err != nil {
			return nil, err
		}
		r = pairing.Add2(r, pairing.ScalarMul2(p, k))
	}
	return encodeG2Point2(r, tb.modulusLen), nil
}

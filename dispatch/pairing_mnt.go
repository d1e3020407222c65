package dispatch

import (
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ecerr"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/pairing"
)

// handleMNT4Pair parses the pairing body shape of handleSexticPair minus
// the second non-residue (quadratic non-residue, G1/G2 curve
// coefficients, twist type, order, the x/w0/w1 parameters, pair list) and
// builds an Ext4 tower (GT = Fp4*) instead of Ext6/Ext12, per
// pairing/mnt4.go.
func handleMNT4Pair(c *cursor) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree != 2 {
		return nil, ecerr.New(ecerr.UnknownParameter, "MNT4 pairings require extension degree 2, got %d", degree)
	}

	g1a, g1b, err := readFpPair(c, f, modulusLen)
	if err != nil {
		return nil, err
	}
	g1Curve := curve.New(f, g1a, g1b)

	tb, err := parseTwist2(c, f, modulusLen)
	if err != nil {
		return nil, err
	}

	// The Fp4 tower sits over the Fp2 generator u (y^2 = u), so no second
	// non-residue appears on the wire for MNT4 — the quadratic one that
	// built Fp2 determines the whole tower.
	u := ext.NewFp2(tb.x2, field.Zero(f), field.One(f))
	ext4 := ext.NewExt4(tb.x2, u)

	if _, err := c.byte(); err != nil { // twist type byte; MNT4 has no sparse twist-dependent multiplier to select
		return nil, err
	}
	// spec.md §3's pairing-engine record lists the Miller-loop parameter x
	// and the final-exponentiation exponents w0/w1 as distinct
	// family-specific fields for MNT4/MNT6; the generic "loop parameter"
	// wire shape (length-prefixed limbs + sign byte) is read three times
	// here, once per field, instead of once as for BLS12/BN.
	x, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}
	w0, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}
	w1, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}

	engine := pairing.NewMNT4Engine(g1Curve, tb.curve, ext4, tb.order, x, w0, w1)

	count, err := c.byte()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ecerr.New(ecerr.InputError, "pairing check requires at least one pair")
	}
	g1pts := make([]*curve.Point, 0, count)
	g2pts := make([]*pairing.Point2, 0, count)
	p1Bc := &baseCurve{f: f, curve: g1Curve, modulusLen: modulusLen}
	for i := 0; i < int(count); i++ {
		p1, err := fpPoint(c, p1Bc)
		if err != nil {
			return nil, err
		}
		p2, err := g2Point2(c, tb)
		if err != nil {
			return nil, err
		}
		if !inGasMetering && !curve.InSubgroup(p1, tb.order) {
			return nil, ecerr.New(ecerr.InputError, "g1 point is not in the subgroup")
		}
		if !inGasMetering && !pairing.ScalarMul2(p2, tb.order).IsInfinity() {
			return nil, ecerr.New(ecerr.InputError, "g2 point is not in the subgroup")
		}
		g1pts = append(g1pts, p1)
		g2pts = append(g2pts, p2)
	}

	ok, valid := engine.MultiPairingCheck(g1pts, g2pts)
	if !valid {
		return nil, ecerr.New(ecerr.MissingValue, "pairing engine returned no value")
	}
	return boolResult(ok), nil
}

// handleMNT6Pair is handleMNT4Pair's MNT6 analogue: G2 lives on a cubic
// (Fp3) twist and GT = Fp6b*, per pairing/mnt6.go.
func handleMNT6Pair(c *cursor) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree != 3 {
		return nil, ecerr.New(ecerr.UnknownParameter, "MNT6 pairings require extension degree 3, got %d", degree)
	}

	g1a, g1b, err := readFpPair(c, f, modulusLen)
	if err != nil {
		return nil, err
	}
	g1Curve := curve.New(f, g1a, g1b)

	tb, err := parseTwist3(c, f, modulusLen)
	if err != nil {
		return nil, err
	}

	// As in handleMNT4Pair, the Fp6 tower sits over the Fp3 generator u
	// (y^2 = u) — the cubic non-residue fixes the whole tower.
	zero := field.Zero(f)
	u := ext.NewFp3(tb.x3, zero, field.One(f), zero.Clone())
	ext6b := ext.NewExt6b(tb.x3, u)

	if _, err := c.byte(); err != nil { // twist type byte; MNT6 has no sparse twist-dependent multiplier to select
		return nil, err
	}
	// See handleMNT4Pair: x drives the Miller loop, w0/w1 drive the
	// two-part final exponentiation's hard half (spec.md §3/§4.5).
	x, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}
	w0, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}
	w1, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}

	engine := pairing.NewMNT6Engine(g1Curve, tb.curve, ext6b, tb.order, x, w0, w1)

	count, err := c.byte()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ecerr.New(ecerr.InputError, "pairing check requires at least one pair")
	}
	g1pts := make([]*curve.Point, 0, count)
	g2pts := make([]*pairing.Point3, 0, count)
	p1Bc := &baseCurve{f: f, curve: g1Curve, modulusLen: modulusLen}
	for i := 0; i < int(count); i++ {
		p1, err := fpPoint(c, p1Bc)
		if err != nil {
			return nil, err
		}
		p2, err := g2Point3(c, tb)
		if err != nil {
			return nil, err
		}
		if !inGasMetering && !curve.InSubgroup(p1, tb.order) {
			return nil, ecerr.New(ecerr.InputError, "g1 point is not in the subgroup")
		}
		if !inGasMetering && !pairing.ScalarMul3(p2, tb.order).IsInfinity() {
			return nil, ecerr.New(ecerr.InputError, "g2 point is not in the subgroup")
		}
		g1pts = append(g1pts, p1)
		g2pts = append(g2pts, p2)
	}

	ok, valid := engine.MultiPairingCheck(g1pts, g2pts)
	if !valid {
		return nil, ecerr.New(ecerr.MissingValue, "pairing engine returned no value")
	}
	return boolResult(ok), nil
}

func readFpPair(c *cursor, f *field.Field, modulusLen int) (*field.Element, *field.Element, error) {
	aBytes, err := c.take(modulusLen)
	if err != nil {
		return nil, nil, err
	}
	bBytes, err := c.take(modulusLen)
	if err != nil {
		return nil, nil, err
	}
	a, err := field.FromBytes(f, aBytes)
	if err != nil {
		return nil, nil, ecerr.New(ecerr.InputError, "g1 coefficient a: %s", err.Error())
	}
	b, err := field.FromBytes(f, bBytes)
	if err != nil {
		return nil, nil, ecerr.New(ecerr.InputError, "g1 coefficient b: %s", err.Error())
	}
	return a, b, nil
}

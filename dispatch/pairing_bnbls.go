package dispatch

import (
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ecerr"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/pairing"
)

// handleBLS12Pair and handleBNPair both parse the BLS12_PAIR/BN_PAIR wire
// body via handleSexticPair; the op tag alone determines which family's
// final-exponentiation hard part applies (spec.md §4.5: BLS12's
// five-exp_by_x Ghammam-Fouotsa table vs. BN's Devegili fused chain), since
// the generic byte framing carries curve parameters but not a family name.
func handleBLS12Pair(c *cursor) ([]byte, error) {
	return handleSexticPair(c, pairing.FamilyBLS12)
}

func handleBNPair(c *cursor) ([]byte, error) {
	return handleSexticPair(c, pairing.FamilyBN)
}

// handleSexticPair serves both BLS12_PAIR and BN_PAIR: both families embed
// G2 over Fp2 and land the pairing value in Fp12 via a cubic-over-Fp2
// sextic twist (pairing.Engine, see pairing/bnbls.go). Parses the body for
// pairing operations: quadratic non-residue, G1 curve coefficients, G2
// twist coefficients and subgroup order, sextic non-residue, twist type
// byte, the signed family parameter and a (G1,G2) pair list.
func handleSexticPair(c *cursor, family pairing.Family) ([]byte, error) {
	f, modulusLen, degree, err := parseExtPrefix(c)
	if err != nil {
		return nil, err
	}
	if degree != 2 {
		return nil, ecerr.New(ecerr.UnknownParameter, "BLS12/BN pairings require extension degree 2, got %d", degree)
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

	sextic, err := fp2Elem(c, tb.x2, modulusLen)
	if err != nil {
		return nil, err
	}
	ext6 := ext.NewExt6(tb.x2, sextic)
	ext12 := ext.NewExt12(ext6)

	twistType, err := c.byte()
	if err != nil {
		return nil, err
	}
	if twistType != 1 && twistType != 2 {
		return nil, ecerr.New(ecerr.UnknownParameter, "twist type byte %d is not D(2) or M(1)", twistType)
	}

	loopParam, err := readLoopParameterBig(c)
	if err != nil {
		return nil, err
	}

	engine := pairing.NewEngine(g1Curve, tb.curve, ext12, tb.order, loopParam, pairing.TwistType(twistType), family)

	count, err := c.byte()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ecerr.New(ecerr.InputError, "pairing check requires at least one pair")
	}
	g1pts := make([]*curve.Point, 0, count)
	g2pts := make([]*pairing.Point2, 0, count)
	for i := 0; i < int(count); i++ {
		p1Bc := &baseCurve{f: f, curve: g1Curve, modulusLen: modulusLen}
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

// readLoopParameter reads the loop-parameter length-prefixed limbs plus
// its own sign byte, per spec.md §6: "loop parameter with its own length
// prefix plus a sign byte". This is the family parameter spec.md §3 names
// (BLS12's x, BN's u, MNT's ate-loop count) — derived loop forms (BN's
// 6u+2 limb vector and its wNAF) are precomputed by the engine at
// construction, not carried on the wire.
func readLoopParameter(c *cursor) (limbsBE []byte, negative bool, err error) {
	limbsBE, err = c.lenPrefixed()
	if err != nil {
		return nil, false, err
	}
	signByte, err := c.byte()
	if err != nil {
		return nil, false, err
	}
	if signByte != 0 && signByte != 1 {
		return nil, false, ecerr.New(ecerr.UnknownParameter, "sign byte %d is not 0 or 1", signByte)
	}
	return limbsBE, signByte == 1, nil
}

// readLoopParameterBig is readLoopParameter plus the big.Int assembly step
// every pairing engine needs: the Miller loop and final exponentiation are
// both driven directly by this caller-supplied value (see pairing.NewEngine,
// pairing.NewMNT4Engine, pairing.NewMNT6Engine).
func readLoopParameterBig(c *cursor) (*big.Int, error) {
	limbsBE, negative, err := readLoopParameter(c)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(limbsBE)
	if negative {
		v.Neg(v)
	}
	return v, nil
}

func boolResult(b bool) []byte {
	out := make([]byte, 32)
	if b {
		out[31] = 1
	}
	return out
}

package dispatch

import (
	"math/big"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ecerr"
)

func handleG1Add(c *cursor) ([]byte, error) {
	bc, err := parseBaseCurve(c)
	if err != nil {
		return nil, err
	}
	p, err := fpPoint(c, bc)
	if err != nil {
		return nil, err
	}
	q, err := fpPoint(c, bc)
	if err != nil {
		return nil, err
	}
	r := curve.Add(p, q)
	return encodeFpPoint(r, bc.modulusLen), nil
}

func handleG1Mul(c *cursor) ([]byte, error) {
	bc, err := parseBaseCurve(c)
	if err != nil {
		return nil, err
	}
	p, err := fpPoint(c, bc)
	if err != nil {
		return nil, err
	}
	k, err := scalar(c, bc)
	if err != nil {
		return nil, err
	}
	r := curve.WNAFMul(p, k, 4)
	return encodeFpPoint(r, bc.modulusLen), nil
}

// handleG1Multiexp reads a one-byte pair count followed by that many
// (point, scalar) pairs, mirroring the one-byte count prefix used for a
// pairing operation's (G1,G2) pairs — the natural extension of the same
// framing idiom to multiexp's (point,scalar) pairs (see DESIGN.md for the
// count-framing decision).
func handleG1Multiexp(c *cursor) ([]byte, error) {
	bc, err := parseBaseCurve(c)
	if err != nil {
		return nil, err
	}
	count, err := c.byte()
	if err != nil {
		return nil, err
	}
	points := make([]*curve.Point, 0, count)
	scalars := make([]*big.Int, 0, count)
	for i := 0; i < int(count); i++ {
		p, err := fpPoint(c, bc)
		if err != nil {
			return nil, err
		}
		k, err := scalar(c, bc)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
		scalars = append(scalars, k)
	}
	if len(points) == 0 {
		return nil, ecerr.New(ecerr.InputError, "multiexp requires at least one pair")
	}
	r := curve.MultiExp(points, scalars)
	return encodeFpPoint(r, bc.modulusLen), nil
}

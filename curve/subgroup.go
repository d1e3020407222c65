package curve

import "math/big"

// InSubgroup reports whether p, already known to be on the curve, lies in
// the subgroup of the given order: n*P = O, checked directly rather than
// via a cofactor-endomorphism shortcut.
func InSubgroup(p *Point, order *big.Int) bool {
	return ScalarMul(p, order).IsInfinity()
}

package curve

import "math/big"

// WNAF computes the width-w non-adjacent form digits of k, least
// significant digit first, each nonzero digit odd and in
// (-2^(w-1), 2^(w-1)).
// wnaf_mul(k, P, w) must equal mul(k, P) for any window 2 <= w <= 7.
func WNAF(k *big.Int, w uint) []int32 {
	if k.Sign() == 0 {
		return nil
	}
	n := new(big.Int).Set(k)
	neg := n.Sign() < 0
	if neg {
		n.Neg(n)
	}

	var digits []int32
	windowMask := new(big.Int).Lsh(big.NewInt(1), w)
	half := int64(1) << (w - 1)

	for n.Sign() != 0 {
		var digit int32
		if n.Bit(0) == 1 {
			mod := new(big.Int).Mod(n, windowMask)
			d := mod.Int64()
			if d >= half {
				d -= int64(1) << w
			}
			digit = int32(d)
			n.Sub(n, big.NewInt(d))
		}
		digits = append(digits, digit)
		n.Rsh(n, 1)
	}

	if neg {
		for i := range digits {
			digits[i] = -digits[i]
		}
	}
	return digits
}

// WNAFMul computes k*P via windowed NAF: precompute odd multiples
// 1*P, 3*P, ..., (2^(w-1)-1)*P, then accumulate MSB-first.
func WNAFMul(p *Point, k *big.Int, w uint) *Point {
	if k.Sign() == 0 || p.IsInfinity() {
		return Infinity(p.curve)
	}
	if w < 2 {
		w = 2
	}

	digits := WNAF(k, w)
	if len(digits) == 0 {
		return Infinity(p.curve)
	}

	tableSize := 1 << (w - 2) // odd multiples 1,3,...,2^(w-1)-1
	table := make([]*Point, tableSize)
	table[0] = p
	twiceP := Double(p)
	for i := 1; i < tableSize; i++ {
		table[i] = Add(table[i-1], twiceP)
	}

	r := Infinity(p.curve)
	for i := len(digits) - 1; i >= 0; i-- {
		r = Double(r)
		d := digits[i]
		if d == 0 {
			continue
		}
		idx := d
		if idx < 0 {
			idx = -idx
		}
		term := table[(idx-1)/2]
		if d < 0 {
			term = Neg(term)
		}
		r = Add(r, term)
	}
	return r
}

package curve

import (
	"math"
	"math/big"
)

// windowWidth picks the bucket width Pippenger uses: a small fixed window
// for small input counts, growing as ceil(ln(n)) for larger ones.
// Grounded structurally on original_source/src/multiexp.rs's `peppinger`,
// whose window-selection heuristic this mirrors.
func windowWidth(n int) int {
	if n < 32 {
		return 3
	}
	return int(math.Ceil(math.Log(float64(n))))
}

// MultiExp computes sum(scalars[i] * points[i]) via Pippenger's bucket
// method: for each of ceil(maxBits/c) windows of c bits, accumulate
// points into 2^c-1 buckets keyed by their c-bit digit, then combine
// buckets with the standard triangular running-sum trick
// (running total += bucket; accumulator += running total, high to low).
func MultiExp(points []*Point, scalars []*big.Int) *Point {
	if len(points) == 0 {
		return nil
	}
	curve := points[0].curve
	if len(points) != len(scalars) {
		return Infinity(curve)
	}

	maxBits := 0
	for _, s := range scalars {
		if b := s.BitLen(); b > maxBits {
			maxBits = b
		}
	}
	if maxBits == 0 {
		return Infinity(curve)
	}

	c := windowWidth(len(points))
	numBuckets := 1 << c
	numWindows := (maxBits + c - 1) / c

	result := Infinity(curve)
	for w := numWindows - 1; w >= 0; w-- {
		for i := 0; i < c; i++ {
			result = Double(result)
		}

		buckets := make([]*Point, numBuckets)
		for i, p := range points {
			digit := bucketDigit(scalars[i], w, c)
			if digit == 0 {
				continue
			}
			if buckets[digit] == nil {
				buckets[digit] = p
			} else {
				buckets[digit] = Add(buckets[digit], p)
			}
		}

		running := Infinity(curve)
		windowSum := Infinity(curve)
		for b := numBuckets - 1; b >= 1; b-- {
			if buckets[b] != nil {
				running = Add(running, buckets[b])
			}
			windowSum = Add(windowSum, running)
		}
		result = Add(result, windowSum)
	}
	return result
}

func bucketDigit(s *big.Int, window, c int) int {
	d := 0
	for i := 0; i < c; i++ {
		if s.Bit(window*c+i) == 1 {
			d |= 1 << i
		}
	}
	return d
}

// NaiveMultiExp computes the same sum via plain sequential scalar
// multiplication and addition, used as a cross-check against Pippenger.
func NaiveMultiExp(points []*Point, scalars []*big.Int) *Point {
	if len(points) == 0 {
		return nil
	}
	curve := points[0].curve
	result := Infinity(curve)
	for i, p := range points {
		result = Add(result, ScalarMul(p, scalars[i]))
	}
	return result
}

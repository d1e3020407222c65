package curve_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/field"
)

// Cross-checks curve.ScalarMul/curve.WNAFMul against gnark-crypto's
// code-generated BN254 G1 implementation for the curve's standard
// generator. gnark-crypto only ships fixed, compile-time curve parameters
// (BN254, BLS12-381, ...), so it can act as an independent oracle for this
// one instantiation of curve.Curve but can never replace the
// runtime-parameterized package itself (it has no BN/MNT-family-agnostic,
// arbitrary-modulus entry point) — see DESIGN.md's curve entry.
func bn254G1Curve(t *testing.T) (*curve.Curve, *curve.Point) {
	t.Helper()
	p, _ := new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
	n := bigint.WidthFor((p.BitLen() + 7) / 8)
	f, err := field.New(bigint.FromBytesBE(p.Bytes(), n))
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	a := field.Zero(f)
	b, err := field.FromBytes(f, big.NewInt(3).Bytes())
	if err != nil {
		t.Fatalf("FromBytes(b): %v", err)
	}
	c := curve.New(f, a, b)

	x, err := field.FromBytes(f, big.NewInt(1).Bytes())
	if err != nil {
		t.Fatalf("FromBytes(x): %v", err)
	}
	y, err := field.FromBytes(f, big.NewInt(2).Bytes())
	if err != nil {
		t.Fatalf("FromBytes(y): %v", err)
	}
	return c, curve.FromAffine(c, x, y)
}

func TestBN254ScalarMulMatchesGnarkCrypto(t *testing.T) {
	c, g1 := bn254G1Curve(t)

	gGen, _, _, _ := bn254.Generators()

	scalars := []int64{1, 2, 3, 12345678, 987654321}
	for _, s := range scalars {
		k := big.NewInt(s)

		got := curve.ScalarMul(g1, k)
		gotX, gotY := got.ToAffine()

		var wantJac bn254.G1Jac
		wantJac.ScalarMultiplication(&gGen, k)
		var wantAff bn254.G1Affine
		wantAff.FromJacobian(&wantJac)

		if new(big.Int).SetBytes(gotX.Bytes()).Cmp(wantAff.X.BigInt(new(big.Int))) != 0 ||
			new(big.Int).SetBytes(gotY.Bytes()).Cmp(wantAff.Y.BigInt(new(big.Int))) != 0 {
			t.Errorf("ScalarMul(%d): got (%x,%x), want affine (%s,%s)",
				s, gotX.Bytes(), gotY.Bytes(), wantAff.X.String(), wantAff.Y.String())
		}

		gotW := curve.WNAFMul(g1, k, 4)
		wx, wy := gotW.ToAffine()
		if new(big.Int).SetBytes(wx.Bytes()).Cmp(wantAff.X.BigInt(new(big.Int))) != 0 ||
			new(big.Int).SetBytes(wy.Bytes()).Cmp(wantAff.Y.BigInt(new(big.Int))) != 0 {
			t.Errorf("WNAFMul(%d): got (%x,%x), want affine (%s,%s)",
				s, wx.Bytes(), wy.Bytes(), wantAff.X.String(), wantAff.Y.String())
		}
	}

	_ = c
}

package h2c

import (
	"testing"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/pairing"
)

// toyTwist2 builds a twist curve y^2 = x^3 + 1 over Fp2 with non-residue
// -1, p=23 (3 mod 4, so -1 is a quadratic non-residue mod p and the tower
// is non-degenerate for ring arithmetic purposes).
func toyTwist2(t *testing.T) *pairing.TwistCurve2 {
	t.Helper()
	modulus := bigint.New(4)
	modulus[0] = 23
	f, err := field.New(modulus)
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	negOne := field.Neg(field.One(f))
	x2 := ext.NewExt2(f, negOne)
	a2 := ext.Fp2Zero(x2)
	b2 := ext.NewFp2(x2, field.One(f), field.Zero(f))
	return pairing.NewTwistCurve2(x2, a2, b2)
}

func onCurve2(tc *pairing.TwistCurve2, p *pairing.Point2) bool {
	x, y := p.ToAffine()
	return pairing.IsOnCurve2(tc, x, y)
}

func TestMapToG2_AlwaysOnCurve(t *testing.T) {
	tc := toyTwist2(t)
	f := tc.Ext2().Base()
	for c0 := byte(0); c0 < 5; c0++ {
		for c1 := byte(0); c1 < 5; c1++ {
			a, err := field.FromBytes(f, []byte{c0})
			if err != nil {
				t.Fatal(err)
			}
			b, err := field.FromBytes(f, []byte{c1})
			if err != nil {
				t.Fatal(err)
			}
			u := ext.NewFp2(tc.Ext2(), a, b)
			p := MapToG2(tc, u)
			if !onCurve2(tc, p) {
				t.Fatalf("u=(%d,%d): mapped point is not on the curve", c0, c1)
			}
		}
	}
}

func TestHashToG2_Deterministic(t *testing.T) {
	tc := toyTwist2(t)
	dst := []byte("ecengine-test-DST-g2")

	p1, err := HashToG2(tc, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := HashToG2(tc, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	if !pairing.Equal2(p1, p2) {
		t.Fatal("HashToG2 is not deterministic for identical input")
	}
	if !onCurve2(tc, p1) {
		t.Fatal("HashToG2 result is not on the curve")
	}
}

// toyTwist3 builds a cubic-extension twist curve y^2 = x^3 + 1 over Fp3
// with non-residue 2, p=37 (37 = 1 mod 3, so cubic extensions exist, and
// 2 is a cubic non-residue mod 37, so x^3 - 2 is irreducible).
func toyTwist3(t *testing.T) *pairing.TwistCurve3 {
	t.Helper()
	modulus := bigint.New(4)
	modulus[0] = 37
	f, err := field.New(modulus)
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	nr, err := field.FromBytes(f, []byte{2})
	if err != nil {
		t.Fatalf("field.FromBytes(nr): %v", err)
	}
	x3 := ext.NewExt3(f, nr)
	a3 := ext.Fp3Zero(x3)
	b3 := ext.NewFp3(x3, field.One(f), field.Zero(f), field.Zero(f))
	return pairing.NewTwistCurve3(x3, a3, b3)
}

func onCurve3(tc *pairing.TwistCurve3, p *pairing.Point3) bool {
	x, y := p.ToAffine()
	return pairing.IsOnCurve3(tc, x, y)
}

func TestMapToG2Cubic_AlwaysOnCurve(t *testing.T) {
	tc := toyTwist3(t)
	f := tc.Ext3().Base()
	for c0 := byte(0); c0 < 4; c0++ {
		for c1 := byte(0); c1 < 4; c1++ {
			for c2 := byte(0); c2 < 4; c2++ {
				a, err := field.FromBytes(f, []byte{c0})
				if err != nil {
					t.Fatal(err)
				}
				b, err := field.FromBytes(f, []byte{c1})
				if err != nil {
					t.Fatal(err)
				}
				c, err := field.FromBytes(f, []byte{c2})
				if err != nil {
					t.Fatal(err)
				}
				u := ext.NewFp3(tc.Ext3(), a, b, c)
				p := MapToG2Cubic(tc, u)
				if !onCurve3(tc, p) {
					t.Fatalf("u=(%d,%d,%d): mapped point is not on the curve", c0, c1, c2)
				}
			}
		}
	}
}

func TestHashToG2Cubic_Deterministic(t *testing.T) {
	tc := toyTwist3(t)
	dst := []byte("ecengine-test-DST-g2cubic")

	p1, err := HashToG2Cubic(tc, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := HashToG2Cubic(tc, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	if !pairing.Equal3(p1, p2) {
		t.Fatal("HashToG2Cubic is not deterministic for identical input")
	}
	if !onCurve3(tc, p1) {
		t.Fatal("HashToG2Cubic result is not on the curve")
	}
}

package pairing

import (
	"math/big"
	"testing"

	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

// mnt4Engine builds the MNT4-298 pairing stack from
// original_source/src/pairings/mnt4/mod.rs's test_mnt4_pairing fixture:
// same field modulus, curve/twist coefficients and G1/G2 points, so this
// test exercises the same known-answer instance the teacher's own Rust
// test suite checks.
func mnt4Engine(t *testing.T) (*MNT4Engine, *curve.Point, *Point2) {
	t.Helper()
	p, _ := new(big.Int).SetString("475922286169261325753349249653048451545124879242694725395555128576210262817955800483758081", 10)
	n, _ := new(big.Int).SetString("475922286169261325753349249653048451545124878552823515553267735739164647307408490559963137", 10)
	f := mustField(t, p)

	nonResidue := felem(t, f, "17")
	x2 := ext.NewExt2(f, nonResidue)

	aFp := felem(t, f, "2")
	bFp := felem(t, f, "423894536526684178289416011533888240029318103673896002803341544124054745019340795360841685")
	g1Curve := curve.New(f, aFp, bFp)

	twist := ext.NewFp2(x2, field.Zero(f), field.One(f))
	twistSq := ext.Fp2Sqr(twist)
	twistCubed := ext.Fp2Mul(twistSq, twist)
	a2 := ext.Fp2MulByFp(twistSq, aFp)
	b2 := ext.Fp2MulByFp(twistCubed, bFp)
	twistCurve := NewTwistCurve2(x2, a2, b2)

	// Fp4 = Fp2[y]/(y^2 - u): the tower sits over the Fp2 generator.
	quartic := ext.NewFp2(x2, field.Zero(f), field.One(f))
	ext4 := ext.NewExt4(x2, quartic)

	px := felem(t, f, "60760244141852568949126569781626075788424196370144486719385562369396875346601926534016838")
	py := felem(t, f, "363732850702582978263902770815145784459747722357071843971107674179038674942891694705904306")
	p1 := curve.FromAffine(g1Curve, px, py)

	qx := ext.NewFp2(x2,
		felem(t, f, "438374926219350099854919100077809681842783509163790991847867546339851681564223481322252708"),
		felem(t, f, "37620953615500480110935514360923278605464476459712393277679280819942849043649216370485641"))
	qy := ext.NewFp2(x2,
		felem(t, f, "37437409008528968268352521034936931842973546441370663118543015118291998305624025037512482"),
		felem(t, f, "424621479598893882672393190337420680597584695892317197646113820787463109735345923009077489"))
	p2 := FromAffine2(twistCurve, qx, qy)

	x, _ := new(big.Int).SetString("689871209842287392837045615510547309923794944", 10)
	w0, _ := new(big.Int).SetString("689871209842287392837045615510547309923794945", 10)
	w1 := big.NewInt(1)

	engine := NewMNT4Engine(g1Curve, twistCurve, ext4, n, x, w0, w1)
	return engine, p1, p2
}

func TestMNT4PairingBilinearity(t *testing.T) {
	e, p1, p2 := mnt4Engine(t)

	scalar := big.NewInt(12345678)
	p1Scaled := curve.ScalarMul(p1, scalar)
	p2Scaled := ScalarMul2(p2, scalar)

	ans1, ok1 := e.Pair(p1, p2Scaled)
	ans2, ok2 := e.Pair(p1Scaled, p2)
	base, ok3 := e.Pair(p1, p2)
	if !ok1 || !ok2 || !ok3 {
		t.Fatal("pairing returned no value")
	}
	ans3 := ext.Fp4Exp(base, scalar)

	if !ext.Fp4Equal(ans1, ans2) {
		t.Fatal("e(P, k*Q) must equal e(k*P, Q)")
	}
	if !ext.Fp4Equal(ans1, ans3) {
		t.Fatal("e(P, k*Q) must equal e(P,Q)^k")
	}
}

func TestMNT4PairingNonDegenerate(t *testing.T) {
	e, p1, p2 := mnt4Engine(t)
	result, ok := e.Pair(p1, p2)
	if !ok {
		t.Fatal("pairing returned no value")
	}
	if ext.Fp4Equal(result, ext.Fp4One(e.ext4)) {
		t.Fatal("e(P, Q) must not be the identity")
	}
}

func TestMNT4PairingInfinityIsIdentity(t *testing.T) {
	e, p1, p2 := mnt4Engine(t)
	inf1 := curve.Infinity(p1.Curve())
	result, ok := e.Pair(inf1, p2)
	if !ok {
		t.Fatal("pairing returned no value")
	}
	if !ext.Fp4Equal(result, ext.Fp4One(e.ext4)) {
		t.Fatal("e(O, Q) must be the identity")
	}
}

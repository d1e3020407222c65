package pairing

import (
	"math/big"
	"testing"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ext"
	"github.com/ecengine/ecengine/field"
)

func mustField(t *testing.T, p *big.Int) *field.Field {
	t.Helper()
	n := bigint.WidthFor((p.BitLen() + 7) / 8)
	f, err := field.New(bigint.FromBytesBE(p.Bytes(), n))
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	return f
}

func felem(t *testing.T, f *field.Field, dec string) *field.Element {
	t.Helper()
	v, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		t.Fatalf("bad decimal literal %q", dec)
	}
	e, err := field.FromBytes(f, v.Bytes())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return e
}

// bn254Engine builds the full BN254 pairing stack (G1, G2-over-Fp2, Fp12
// target) from the curve's standard published parameters, the same
// values the teacher's bn254_*.go files hardcode.
func bn254Engine(t *testing.T) (*Engine, *curve.Point, *Point2, *big.Int) {
	t.Helper()
	p, _ := new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
	n, _ := new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	f := mustField(t, p)

	a := field.Zero(f)
	b := felem(t, f, "3")
	g1Curve := curve.New(f, a, b)
	g1x := felem(t, f, "1")
	g1y := felem(t, f, "2")
	g1 := curve.FromAffine(g1Curve, g1x, g1y)

	negOne := field.Neg(field.One(f))
	x2 := ext.NewExt2(f, negOne)
	xi := ext.NewFp2(x2, felem(t, f, "9"), field.One(f))
	x6 := ext.NewExt6(x2, xi)
	x12 := ext.NewExt12(x6)

	a2 := ext.Fp2Zero(x2)
	b2 := ext.Fp2MulByFp(ext2InvOrPanic(xi), b) // twist b' = b / xi
	twist := NewTwistCurve2(x2, a2, b2)

	g2x := ext.NewFp2(x2,
		felem(t, f, "10857046999023057135944570762232829481370756359578518086990519993285655852781"),
		felem(t, f, "11559732032986387107991004021392285783925812861821192530917403151452391805634"))
	g2y := ext.NewFp2(x2,
		felem(t, f, "8495653923123431417604973247489272438418190587263600148770280649306958101930"),
		felem(t, f, "4082367875863433681332203403145435568316851327593401208105741076214120093531"))
	g2 := FromAffine2(twist, g2x, g2y)

	// BN254's family parameter u; the engine derives the 6u+2 Miller loop
	// and its wNAF itself. b2 = b/xi above is the D-twist convention.
	u, _ := new(big.Int).SetString("4965661367192848881", 10)
	engine := NewEngine(g1Curve, twist, x12, n, u, TwistD, FamilyBN)
	return engine, g1, g2, n
}

// ext2InvOrPanic is a small test-local convenience wrapper panicking on
// failure, since the BN254 Fp2 non-residue 9+i is always invertible.
func ext2InvOrPanic(e *ext.Fp2) *ext.Fp2 {
	inv, ok := ext.Fp2Inv(e)
	if !ok {
		panic("non-residue not invertible")
	}
	return inv
}

func TestBN254PairingNonDegenerate(t *testing.T) {
	e, g1, g2, _ := bn254Engine(t)
	result, ok := e.Pair(g1, g2)
	if !ok {
		t.Fatal("pairing returned no value")
	}
	if ext.Fp12Equal(result, ext.Fp12One(e.ext12)) {
		t.Fatal("e(G1, G2) must not be the identity")
	}
}

func TestBN254PairingBilinearity(t *testing.T) {
	e, g1, g2, _ := bn254Engine(t)

	scalar := big.NewInt(12345678)
	g1Scaled := curve.ScalarMul(g1, scalar)
	g2Scaled := ScalarMul2(g2, scalar)

	ans1, ok1 := e.Pair(g1Scaled, g2)
	ans2, ok2 := e.Pair(g1, g2Scaled)
	base, ok3 := e.Pair(g1, g2)
	if !ok1 || !ok2 || !ok3 {
		t.Fatal("pairing returned no value")
	}
	ans3 := ext.Fp12Exp(base, scalar)

	if !ext.Fp12Equal(ans1, ans2) {
		t.Fatal("e(k*G1, G2) must equal e(G1, k*G2)")
	}
	if !ext.Fp12Equal(ans1, ans3) {
		t.Fatal("e(k*G1, G2) must equal e(G1,G2)^k")
	}
}

func TestBN254PairingInfinityIsIdentity(t *testing.T) {
	e, g1, g2, _ := bn254Engine(t)
	inf1 := curve.Infinity(g1.Curve())
	result, ok := e.Pair(inf1, g2)
	if !ok {
		t.Fatal("pairing returned no value")
	}
	if !ext.Fp12Equal(result, ext.Fp12One(e.ext12)) {
		t.Fatal("e(O, G2) must be the identity")
	}
}

// bls12381Engine builds the full BLS12-381 pairing stack from the
// curve's standard published parameters (IETF BLS signature draft /
// EIP-2537), the M-twist convention (G2 equation y^2 = x^3 + 4(u+1)
// directly, rather than BN254's b/xi division).
func bls12381Engine(t *testing.T) (*Engine, *curve.Point, *Point2) {
	t.Helper()
	p, _ := new(big.Int).SetString("4002409555221667393417789825735904156556882819939007885332058136124031650490837864442687629129015664037894272559787", 10)
	n, _ := new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)
	f := mustField(t, p)

	a := field.Zero(f)
	b := felem(t, f, "4")
	g1Curve := curve.New(f, a, b)
	g1x := felem(t, f, "3685416753713387016781088315183077757961620795782546409894578378688607592378376318836054947676345821548104185464507")
	g1y := felem(t, f, "1339506544944476473020471379941921221584933875938349620426543736416511423956333506472724655353366534992391756441569")
	g1 := curve.FromAffine(g1Curve, g1x, g1y)

	negOne := field.Neg(field.One(f))
	x2 := ext.NewExt2(f, negOne)
	xi := ext.NewFp2(x2, field.One(f), field.One(f))
	x6 := ext.NewExt6(x2, xi)
	x12 := ext.NewExt12(x6)

	a2 := ext.Fp2Zero(x2)
	b2 := ext.NewFp2(x2, felem(t, f, "4"), felem(t, f, "4"))
	twist := NewTwistCurve2(x2, a2, b2)

	g2x := ext.NewFp2(x2,
		felem(t, f, "352701069587466618187139116011060144890029952792775240219908644239793785735715026873347600343865175952761926303160"),
		felem(t, f, "3059144344244213709971259814753781636986470325476647558659373206291635324768958432433509563104347017837885763365758"))
	g2y := ext.NewFp2(x2,
		felem(t, f, "1985150602287291935568054521177171638300868978215655730859378665066344726373823718423869104263333984641494340347905"),
		felem(t, f, "927553665492332455747201965776037880757740193453592970025027978793976877002675564980949289727957565575433344219582"))
	g2 := FromAffine2(twist, g2x, g2y)

	loopParam, _ := new(big.Int).SetString("-15132376222941642752", 10)
	engine := NewEngine(g1Curve, twist, x12, n, loopParam, TwistM, FamilyBLS12)
	return engine, g1, g2
}

// TestBLS12PairingBilinearity is spec scenario 4: e(12345678*G1, G2) ==
// e(G1, 12345678*G2) == e(G1, G2)^12345678.
func TestBLS12PairingBilinearity(t *testing.T) {
	e, g1, g2 := bls12381Engine(t)

	scalar := big.NewInt(12345678)
	g1Scaled := curve.ScalarMul(g1, scalar)
	g2Scaled := ScalarMul2(g2, scalar)

	ans1, ok1 := e.Pair(g1Scaled, g2)
	ans2, ok2 := e.Pair(g1, g2Scaled)
	base, ok3 := e.Pair(g1, g2)
	if !ok1 || !ok2 || !ok3 {
		t.Fatal("pairing returned no value")
	}
	ans3 := ext.Fp12Exp(base, scalar)

	if !ext.Fp12Equal(ans1, ans2) {
		t.Fatal("e(k*G1, G2) must equal e(G1, k*G2)")
	}
	if !ext.Fp12Equal(ans1, ans3) {
		t.Fatal("e(k*G1, G2) must equal e(G1,G2)^k")
	}
}

func TestBN254MultiPairingNegationCancels(t *testing.T) {
	e, g1, g2, _ := bn254Engine(t)
	negG1 := curve.Neg(g1)
	ok, valid := e.MultiPairingCheck([]*curve.Point{g1, negG1}, []*Point2{g2, g2})
	if !valid {
		t.Fatal("pairing returned no value")
	}
	if !ok {
		t.Fatal("e(G1,G2) * e(-G1,G2) should equal 1")
	}
}

package h2c

import (
	"math/big"
	"testing"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/field"
)

func TestExpandMessageXMD_Deterministic(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-expander-SHA256-128")
	msg := []byte("abc")

	out, err := expandMessageXMD(msg, dst, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 32 {
		t.Fatalf("len = %d, want 32", len(out))
	}

	out2, err := expandMessageXMD(msg, dst, 32)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if out[i] != out2[i] {
			t.Fatalf("non-deterministic at byte %d", i)
		}
	}
}

func TestExpandMessageXMD_DifferentMessagesDiffer(t *testing.T) {
	dst := []byte("test-dst")
	a, err := expandMessageXMD([]byte("abc"), dst, 32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := expandMessageXMD([]byte("def"), dst, 32)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different messages produced the same expansion")
	}
}

func TestExpandMessageXMD_LongDSTRejected(t *testing.T) {
	dst := make([]byte, 256)
	if _, err := expandMessageXMD([]byte("x"), dst, 32); err == nil {
		t.Fatal("expected an error for a DST over 255 bytes")
	}
}

func toyCurve(t *testing.T) *curve.Curve {
	t.Helper()
	// p=23 (3 mod 4, so field.Sqrt takes the direct a^((p+1)/4) path),
	// curve y^2 = x^3 + 1.
	modulus := bigint.New(4)
	modulus[0] = 23
	f, err := field.New(modulus)
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	a := field.Zero(f)
	b, err := field.FromBytes(f, []byte{1})
	if err != nil {
		t.Fatalf("field.FromBytes(b): %v", err)
	}
	return curve.New(f, a, b)
}

// MapToG1 of u=2 on y^2=x^3+1 mod 23: x=2 gives x^3+1=9, a perfect square
// (3^2=9), so the try-and-increment search succeeds on the first try.
// field.Sqrt's 3-mod-4 path returns r=3 deterministically; 3 is odd while
// u=2 is even, so the sign-matching step flips the result to y=23-3=20,
// which is even, matching u's parity. 20^2 mod 23 = 400 mod 23 = 9,
// confirming (2,20) is the expected, sign-corrected point.
func TestMapToG1_FirstTryMatch(t *testing.T) {
	c := toyCurve(t)
	u, err := field.FromBytes(c.Field(), []byte{2})
	if err != nil {
		t.Fatalf("field.FromBytes(u): %v", err)
	}

	p := MapToG1(c, u)
	if !curve.PointIsOnCurve(p) {
		t.Fatal("mapped point is not on the curve")
	}
	x, y := p.ToAffine()
	wantX, err := field.FromBytes(c.Field(), []byte{2})
	if err != nil {
		t.Fatal(err)
	}
	wantY, err := field.FromBytes(c.Field(), []byte{20})
	if err != nil {
		t.Fatal(err)
	}
	if !field.Equal(x, wantX) || !field.Equal(y, wantY) {
		t.Fatalf("got (%x, %x), want (2, 20)", x.Bytes(), y.Bytes())
	}
}

func TestMapToG1_AlwaysOnCurve(t *testing.T) {
	c := toyCurve(t)
	for i := byte(0); i < 23; i++ {
		u, err := field.FromBytes(c.Field(), []byte{i})
		if err != nil {
			t.Fatalf("field.FromBytes(%d): %v", i, err)
		}
		p := MapToG1(c, u)
		if !curve.PointIsOnCurve(p) {
			t.Fatalf("u=%d: mapped point is not on the curve", i)
		}
	}
}

// bls12381G1Curve builds BLS12-381's G1 curve (y^2 = x^3 + 4) from its
// standard published modulus, the same curve pairing_test.go's
// bls12381Engine helper uses.
func bls12381G1Curve(t *testing.T) *curve.Curve {
	t.Helper()
	p, ok := new(big.Int).SetString("4002409555221667393417789825735904156556882819939007885332058136124031650490837864442687629129015664037894272559787", 10)
	if !ok {
		t.Fatal("bad BLS12-381 modulus literal")
	}
	limbs := bigint.WidthFor((p.BitLen() + 7) / 8)
	f, err := field.New(bigint.FromBytesBE(p.Bytes(), limbs))
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	a := field.Zero(f)
	b, err := field.FromBytes(f, []byte{4})
	if err != nil {
		t.Fatalf("field.FromBytes(b): %v", err)
	}
	return curve.New(f, a, b)
}

// TestMapToG1_BLS12381_Integer42 is spec scenario 5: map_fp_to_g1 on
// BLS12-381 for the integer 42 always lands on the curve.
func TestMapToG1_BLS12381_Integer42(t *testing.T) {
	c := bls12381G1Curve(t)
	u, err := field.FromBytes(c.Field(), []byte{42})
	if err != nil {
		t.Fatalf("field.FromBytes(42): %v", err)
	}
	p := MapToG1(c, u)
	if !curve.PointIsOnCurve(p) {
		t.Fatal("map_fp_to_g1(42) on BLS12-381 is not on the curve")
	}
}

func TestHashToG1_Deterministic(t *testing.T) {
	c := toyCurve(t)
	dst := []byte("ecengine-test-DST")

	p1, err := HashToG1(c, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := HashToG1(c, []byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	if !curve.Equal(p1, p2) {
		t.Fatal("HashToG1 is not deterministic for identical input")
	}
	if !curve.PointIsOnCurve(p1) {
		t.Fatal("HashToG1 result is not on the curve")
	}
}


package field

import (
	"math/big"
	"testing"

	"github.com/ecengine/ecengine/bigint"
)

func testField(t *testing.T) (*Field, *big.Int) {
	t.Helper()
	p, _ := new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
	n := bigint.WidthFor((p.BitLen() + 7) / 8)
	f, err := New(bigint.FromBytesBE(p.Bytes(), n))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, p
}

func elem(t *testing.T, f *Field, v int64) *Element {
	t.Helper()
	b := big.NewInt(v)
	e, err := FromBytes(f, b.Bytes())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return e
}

func TestAddSubIdentity(t *testing.T) {
	f, _ := testField(t)
	a := elem(t, f, 123456789)
	b := elem(t, f, 987654321)

	sum := Add(a, b)
	back := Sub(sum, b)
	if !Equal(back, a) {
		t.Fatal("(a+b)-b != a")
	}
}

func TestMulSquareConsistency(t *testing.T) {
	f, _ := testField(t)
	a := elem(t, f, 424242)
	if !Equal(Mul(a, a), Square(a)) {
		t.Fatal("a*a != a^2")
	}
}

func TestInverse(t *testing.T) {
	f, _ := testField(t)
	a := elem(t, f, 99999)
	inv, ok := Inverse(a)
	if !ok {
		t.Fatal("expected inverse to exist")
	}
	if !Equal(Mul(a, inv), One(f)) {
		t.Fatal("a * a^-1 != 1")
	}

	zero := Zero(f)
	if _, ok := Inverse(zero); ok {
		t.Fatal("expected zero to have no inverse")
	}
}

func TestMontgomeryRoundTrip(t *testing.T) {
	f, _ := testField(t)
	a := elem(t, f, 13131313)
	canon := a.ToCanonical()
	back := FromCanonical(f, canon)
	if !Equal(a, back) {
		t.Fatal("montgomery round trip mismatch")
	}
}

func TestFermatLittleTheorem(t *testing.T) {
	f, p := testField(t)
	a := elem(t, f, 7)
	n := f.Limbs()
	exp := bigint.FromBytesBE(p.Bytes(), n)
	got := Pow(a, exp)
	if !Equal(got, a) {
		t.Fatal("a^p != a")
	}
}

func TestSqrtBN254(t *testing.T) {
	f, _ := testField(t)
	// BN254 p = 3 mod 4.
	if f.Mod4() != 3 {
		t.Fatalf("expected p = 3 mod 4, got %d", f.Mod4())
	}
	a := elem(t, f, 4)
	root, ok := Sqrt(a)
	if !ok {
		t.Fatal("expected sqrt(4) to exist")
	}
	if !Equal(Square(root), a) {
		t.Fatal("sqrt(a)^2 != a")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	f, _ := testField(t)
	a := elem(t, f, 555555)
	enc := a.Bytes()
	back, err := FromBytes(f, enc)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !Equal(a, back) {
		t.Fatal("bytes round trip mismatch")
	}
}

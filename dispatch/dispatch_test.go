package dispatch

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ecengine/ecengine/ecerr"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad test hex %q: %v", s, err)
	}
	return b
}

func TestDispatch_UnknownOpTag(t *testing.T) {
	_, err := Dispatch([]byte{0xff})
	var ecErr *ecerr.Error
	if !errors.As(err, &ecErr) || ecErr.Kind != ecerr.InputError {
		t.Fatalf("err = %v, want an InputError", err)
	}
}

func TestDispatch_EmptyBlob(t *testing.T) {
	_, err := Dispatch(nil)
	var ecErr *ecerr.Error
	if !errors.As(err, &ecErr) || ecErr.Kind != ecerr.InputError {
		t.Fatalf("err = %v, want an InputError for a truncated blob", err)
	}
}

// G1_ADD of the identity with itself, over a tiny toy field: modulus 23,
// a=0, b=1, order=5 (the curve parameters don't matter for this case —
// both operands are (0,0), which is always the identity regardless of
// curve shape, so curve.Add short-circuits before ever touching the
// equation).
func TestDispatch_G1Add_IdentityPlusIdentity(t *testing.T) {
	input := mustHex(t, "0101170001010500000000")

	out, err := Dispatch(input)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := []byte{0x00, 0x00}
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %x, want %x", out, want)
	}
}

func TestDispatch_G1Mul_ScalarZeroOnIdentity(t *testing.T) {
	// tag=G1_MUL, modulus_len=1, modulus=23, a=0, b=1, order_len=1,
	// order=5, point (0,0), scalar=0.
	input := mustHex(t, "0201170001010500000000")

	out, err := Dispatch(input)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := []byte{0x00, 0x00}
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %x, want %x", out, want)
	}
}

func TestDispatch_G1Add_EvenModulusRejected(t *testing.T) {
	// modulus=22 (even) must be rejected before any point parsing.
	input := mustHex(t, "0101160001010500000000")

	_, err := Dispatch(input)
	var ecErr *ecerr.Error
	if !errors.As(err, &ecErr) || ecErr.Kind != ecerr.UnexpectedZero {
		t.Fatalf("err = %v, want UnexpectedZero for an even modulus", err)
	}
}

func TestDispatch_G1Add_PointNotOnCurve(t *testing.T) {
	// modulus=23, a=0, b=1 (y^2 = x^3 + 1); point (2,2): 2^2=4,
	// 2^3+1=9, 4 != 9 mod 23, so this must be rejected.
	input := mustHex(t, "0101170001010502020000")

	_, err := Dispatch(input)
	var ecErr *ecerr.Error
	if !errors.As(err, &ecErr) || ecErr.Kind != ecerr.InputError {
		t.Fatalf("err = %v, want InputError for a point off the curve", err)
	}
}

func TestDispatch_G1Multiexp_RequiresAtLeastOnePair(t *testing.T) {
	// tag=G1_MULTIEXP, modulus_len=1, modulus=23, a=0, b=1, order_len=1,
	// order=5, count=0.
	input := mustHex(t, "0301170001010500")

	_, err := Dispatch(input)
	var ecErr *ecerr.Error
	if !errors.As(err, &ecErr) || ecErr.Kind != ecerr.InputError {
		t.Fatalf("err = %v, want InputError for a zero-pair multiexp", err)
	}
}

package dispatch

import (
	"math/big"

	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/curve"
	"github.com/ecengine/ecengine/ecerr"
	"github.com/ecengine/ecengine/field"
	"github.com/ecengine/ecengine/internal/obslog"
)

// OpTag identifies the operation encoded in the blob's first byte, one of
// the ten supported operations.
type OpTag byte

const (
	G1Add OpTag = iota + 1
	G1Mul
	G1Multiexp
	G2Add
	G2Mul
	G2Multiexp
	BLS12Pair
	BNPair
	MNT4Pair
	MNT6Pair
)

var opNames = map[OpTag]string{
	G1Add: "G1_ADD", G1Mul: "G1_MUL", G1Multiexp: "G1_MULTIEXP",
	G2Add: "G2_ADD", G2Mul: "G2_MUL", G2Multiexp: "G2_MULTIEXP",
	BLS12Pair: "BLS12_PAIR", BNPair: "BN_PAIR",
	MNT4Pair: "MNT4_PAIR", MNT6Pair: "MNT6_PAIR",
}

func (t OpTag) String() string {
	if n, ok := opNames[t]; ok {
		return n
	}
	return "UNKNOWN_OP"
}

var log = obslog.Default().Component("dispatch")

// Dispatch is the engine's single entry point: it parses the operation
// tag, monomorphizes every downstream routine to the limb width the
// modulus needs, and routes the remainder of the blob to the matching
// handler. It never panics on malformed input; every failure mode comes
// back as an *ecerr.Error.
func Dispatch(input []byte) ([]byte, error) {
	c := newCursor(input)
	tagByte, err := c.byte()
	if err != nil {
		return nil, err
	}
	tag := OpTag(tagByte)
	handler, ok := handlers[tag]
	if !ok {
		return nil, ecerr.New(ecerr.InputError, "unknown operation tag %d", tagByte)
	}

	out, err := handler(c)
	if err != nil {
		log.Debug("call failed", "op", tag.String(), "err", err.Error())
		return nil, err
	}
	log.Debug("call ok", "op", tag.String(), "output_len", len(out))
	return out, nil
}

type handlerFunc func(c *cursor) ([]byte, error)

var handlers = map[OpTag]handlerFunc{
	G1Add:      handleG1Add,
	G1Mul:      handleG1Mul,
	G1Multiexp: handleG1Multiexp,
	G2Add:      handleG2Add,
	G2Mul:      handleG2Mul,
	G2Multiexp: handleG2Multiexp,
	BLS12Pair:  handleBLS12Pair,
	BNPair:     handleBNPair,
	MNT4Pair:   handleMNT4Pair,
	MNT6Pair:   handleMNT6Pair,
}

// baseCurve holds what every G1 operation needs: the runtime field, the
// curve descriptor and the subgroup order, per the generic wire framing:
//
//	modulus_len(1) | modulus_be | A_be(modulus_len) | B_be(modulus_len)
//	| order_len(1) | order_be
type baseCurve struct {
	f          *field.Field
	curve      *curve.Curve
	order      *big.Int
	limbs      int
	modulusLen int
	orderLen   int
}

func parseBaseCurve(c *cursor) (*baseCurve, error) {
	modulusBytes, err := c.lenPrefixed()
	if err != nil {
		return nil, err
	}
	limbs := bigint.WidthForBits(new(big.Int).SetBytes(modulusBytes).BitLen())
	if limbs == 0 {
		return nil, ecerr.New(ecerr.InputError, "modulus of %d bytes exceeds the widest supported limb width", len(modulusBytes))
	}
	modulus := bigint.FromBytesBE(modulusBytes, limbs)
	f, ferr := field.New(modulus)
	if ferr != nil {
		return nil, ecerr.New(ecerr.UnexpectedZero, "%s", ferr.Error())
	}

	aBytes, err := c.take(len(modulusBytes))
	if err != nil {
		return nil, err
	}
	bBytes, err := c.take(len(modulusBytes))
	if err != nil {
		return nil, err
	}
	a, err := field.FromBytes(f, aBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "curve coefficient a: %s", err.Error())
	}
	b, err := field.FromBytes(f, bBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "curve coefficient b: %s", err.Error())
	}
	crv := curve.New(f, a, b)

	orderBytes, err := c.lenPrefixed()
	if err != nil {
		return nil, err
	}
	order := new(big.Int).SetBytes(orderBytes)
	if order.Sign() == 0 {
		return nil, ecerr.New(ecerr.UnexpectedZero, "subgroup order is zero")
	}

	return &baseCurve{
		f: f, curve: crv, order: order, limbs: limbs,
		modulusLen: len(modulusBytes), orderLen: len(orderBytes),
	}, nil
}

// fpPoint parses a G1 affine point as two modulus_len-sized coordinates.
func fpPoint(c *cursor, bc *baseCurve) (*curve.Point, error) {
	xBytes, err := c.take(bc.modulusLen)
	if err != nil {
		return nil, err
	}
	yBytes, err := c.take(bc.modulusLen)
	if err != nil {
		return nil, err
	}
	x, err := field.FromBytes(bc.f, xBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "point x: %s", err.Error())
	}
	y, err := field.FromBytes(bc.f, yBytes)
	if err != nil {
		return nil, ecerr.New(ecerr.InputError, "point y: %s", err.Error())
	}
	p := curve.FromAffine(bc.curve, x, y)
	if !inGasMetering && !curve.PointIsOnCurve(p) {
		return nil, ecerr.New(ecerr.InputError, "point is not on curve")
	}
	return p, nil
}

// elementBytes encodes e at exactly modulusLen bytes, the length the
// caller declared the modulus at — which may be shorter than the
// limb-width's natural 8*limbs byte count once the byte length is rounded
// up to the nearest menu entry.
func elementBytes(e *field.Element, modulusLen int) []byte {
	return e.ToCanonical().ToBytesBE(modulusLen)
}

func encodeFpPoint(p *curve.Point, modulusLen int) []byte {
	x, y := p.ToAffine()
	out := make([]byte, 0, 2*modulusLen)
	out = append(out, elementBytes(x, modulusLen)...)
	out = append(out, elementBytes(y, modulusLen)...)
	return out
}

func scalar(c *cursor, bc *baseCurve) (*big.Int, error) {
	b, err := c.take(bc.orderLen)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

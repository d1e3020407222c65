// Package dispatch implements the top-level byte-in/byte-out entry point:
// it reads the operation tag, parses just enough of the header to learn
// the modulus width, picks the smallest limb count off the closed menu
// that covers it, and routes the rest of the blob to the field/ext/curve/
// pairing packages beneath it, following the Run([]byte) ([]byte, error)
// precompile-router convention used elsewhere in this style of codebase.
package dispatch

import (
	"github.com/ecengine/ecengine/bigint"
	"github.com/ecengine/ecengine/ecerr"
)

// cursor is a forward-only reader over the input blob. Every read either
// succeeds or returns an *ecerr.Error with Kind InputError describing the
// truncation, failing fast at the point of the short read rather than
// deferring to a caller.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) byte() (byte, error) {
	if c.remaining() < 1 {
		return 0, ecerr.New(ecerr.InputError, "truncated blob: expected 1 more byte at offset %d", c.pos)
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// lenPrefixed reads a one-byte big-endian length in 1..=128 followed by
// that many bytes.
func (c *cursor) lenPrefixed() ([]byte, error) {
	n, err := c.byte()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > 128 {
		return nil, ecerr.New(ecerr.InputError, "disallowed length %d (must be 1..=128)", n)
	}
	return c.take(int(n))
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ecerr.New(ecerr.InputError, "truncated blob: expected %d more bytes at offset %d", n, c.pos)
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// fixedBE reads exactly n bytes interpreted as a big-endian FixedUint sized
// to the given number of limbs.
func (c *cursor) fixedBE(n, limbs int) (bigint.FixedUint, error) {
	raw, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return bigint.FromBytesBE(raw, limbs), nil
}

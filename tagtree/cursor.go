package tagtree

import (
	"math"

	"github.com/pilecraft/schemwright/schemerr"
)

// cursor is a bounds-checked big-endian reader over an in-memory byte
// slice. Every read that would run past the end of buf returns a
// MalformedContainer error instead of panicking.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return schemerr.Newf(schemerr.MalformedContainer, "read past end of data at offset %d (need %d, have %d)", c.pos, n, len(c.buf)-c.pos)
	}
	return nil
}

func (c *cursor) readByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readInt16() (int16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := int16(c.buf[c.pos])<<8 | int16(c.buf[c.pos+1])
	c.pos += 2
	return v, nil
}

func (c *cursor) readInt32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := int32(c.buf[c.pos])<<24 | int32(c.buf[c.pos+1])<<16 | int32(c.buf[c.pos+2])<<8 | int32(c.buf[c.pos+3])
	c.pos += 4
	return v, nil
}

func (c *cursor) readInt64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(c.buf[c.pos+i])
	}
	c.pos += 8
	return int64(v), nil
}

func (c *cursor) readFloat32() (float32, error) {
	v, err := c.readInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (c *cursor) readFloat64() (float64, error) {
	v, err := c.readInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

func (c *cursor) readString() (string, error) {
	n, err := c.readInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", schemerr.Newf(schemerr.MalformedContainer, "negative string length %d", n)
	}
	b, err := c.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *cursor) readInt32Array(n int) ([]int32, error) {
	if n < 0 {
		return nil, schemerr.Newf(schemerr.MalformedContainer, "negative array length %d", n)
	}
	out := make([]int32, n)
	for i := range out {
		v, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *cursor) readInt64Array(n int) ([]int64, error) {
	if n < 0 {
		return nil, schemerr.Newf(schemerr.MalformedContainer, "negative array length %d", n)
	}
	out := make([]int64, n)
	for i := range out {
		v, err := c.readInt64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

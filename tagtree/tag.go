// Package tagtree is a hand-written reader for the big-endian tagged binary
// tree format used by Java-edition schematic containers. It purposely does
// not depend on any third-party NBT library: the wire format is small and
// the schematic decoder needs fine control over which tag kinds it accepts.
package tagtree

import (
	"fmt"

	"github.com/pilecraft/schemwright/schemerr"
)

// Kind is the one-byte tag type discriminator.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

func (k Kind) String() string {
	names := [...]string{"End", "Byte", "Short", "Int", "Long", "Float", "Double",
		"ByteArray", "String", "List", "Compound", "IntArray", "LongArray"}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Tag is a single named node in the tree. Value holds one of:
// int8, int16, int32, int64, float32, float64, []byte, string, *List,
// Compound, []int32, []int64, depending on Kind.
type Tag struct {
	Kind  Kind
	Name  string
	Value any
}

// List is a homogeneous sequence of unnamed tags.
type List struct {
	ElemKind Kind
	Items    []*Tag
}

// Compound is a set of uniquely-named child tags.
type Compound map[string]*Tag

// Parse reads one complete named tag from data, which must begin with the
// tag's kind byte. A top-level End tag parses to (nil, nil).
func Parse(data []byte) (*Tag, error) {
	c := &cursor{buf: data}
	return readNamedTag(c)
}

func readNamedTag(c *cursor) (*Tag, error) {
	kindByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	kind := Kind(kindByte)
	if kind == KindEnd {
		return nil, nil
	}
	name, err := c.readString()
	if err != nil {
		return nil, err
	}
	value, err := readPayload(c, kind)
	if err != nil {
		return nil, err
	}
	return &Tag{Kind: kind, Name: name, Value: value}, nil
}

func readPayload(c *cursor, kind Kind) (any, error) {
	switch kind {
	case KindByte:
		v, err := c.readByte()
		return int8(v), err
	case KindShort:
		v, err := c.readInt16()
		return v, err
	case KindInt:
		return c.readInt32()
	case KindLong:
		return c.readInt64()
	case KindFloat:
		return c.readFloat32()
	case KindDouble:
		return c.readFloat64()
	case KindByteArray:
		n, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		return c.readBytes(int(n))
	case KindString:
		return c.readString()
	case KindList:
		return readList(c)
	case KindCompound:
		return readCompound(c)
	case KindIntArray:
		n, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		return c.readInt32Array(int(n))
	case KindLongArray:
		n, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		return c.readInt64Array(int(n))
	default:
		return nil, schemerr.Newf(schemerr.MalformedContainer, "unknown tag kind %d", byte(kind))
	}
}

func readList(c *cursor) (*List, error) {
	elemKindByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	count, err := c.readInt32()
	if err != nil {
		return nil, err
	}
	elemKind := Kind(elemKindByte)
	if count < 0 {
		return nil, schemerr.Newf(schemerr.MalformedContainer, "negative list length %d", count)
	}
	items := make([]*Tag, 0, count)
	for i := int32(0); i < count; i++ {
		if elemKind == KindEnd {
			// An empty list is sometimes written with element kind End and
			// a zero count; a nonzero count with kind End is malformed.
			return nil, schemerr.New(schemerr.MalformedContainer, "list of End tags with nonzero length")
		}
		v, err := readPayload(c, elemKind)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		items = append(items, &Tag{Kind: elemKind, Value: v})
	}
	return &List{ElemKind: elemKind, Items: items}, nil
}

func readCompound(c *cursor) (Compound, error) {
	out := make(Compound)
	for {
		kindByte, err := c.readByte()
		if err != nil {
			return nil, err
		}
		kind := Kind(kindByte)
		if kind == KindEnd {
			return out, nil
		}
		name, err := c.readString()
		if err != nil {
			return nil, err
		}
		value, err := readPayload(c, kind)
		if err != nil {
			return nil, fmt.Errorf("compound field %q: %w", name, err)
		}
		out[name] = &Tag{Kind: kind, Name: name, Value: value}
	}
}

// Get looks up a named child of a compound tag.
func (c Compound) Get(name string) (*Tag, bool) {
	t, ok := c[name]
	return t, ok
}

// Compound returns the tag's value as a Compound, if it is one.
func (t *Tag) Compound() (Compound, bool) {
	if t == nil || t.Kind != KindCompound {
		return nil, false
	}
	cv, ok := t.Value.(Compound)
	return cv, ok
}

// List returns the tag's value as a List, if it is one.
func (t *Tag) List() (*List, bool) {
	if t == nil || t.Kind != KindList {
		return nil, false
	}
	lv, ok := t.Value.(*List)
	return lv, ok
}

// String returns the tag's value as a string, if it is one.
func (t *Tag) String() (string, bool) {
	if t == nil || t.Kind != KindString {
		return "", false
	}
	sv, ok := t.Value.(string)
	return sv, ok
}

// Int returns the tag's value widened to int64, if it is any integer kind.
func (t *Tag) Int() (int64, bool) {
	if t == nil {
		return 0, false
	}
	switch v := t.Value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// ByteArray returns the tag's value as a byte slice, if it is one.
func (t *Tag) ByteArray() ([]byte, bool) {
	if t == nil || t.Kind != KindByteArray {
		return nil, false
	}
	bv, ok := t.Value.([]byte)
	return bv, ok
}

// IntArray returns the tag's value as an int32 slice, if it is one.
func (t *Tag) IntArray() ([]int32, bool) {
	if t == nil || t.Kind != KindIntArray {
		return nil, false
	}
	iv, ok := t.Value.([]int32)
	return iv, ok
}

// LongArray returns the tag's value as an int64 slice, if it is one.
func (t *Tag) LongArray() ([]int64, bool) {
	if t == nil || t.Kind != KindLongArray {
		return nil, false
	}
	lv, ok := t.Value.([]int64)
	return lv, ok
}

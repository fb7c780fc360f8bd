package schemwright

import "github.com/pilecraft/schemwright/schematic"

// A tiny hand-rolled big-endian NBT writer, used only by this package's
// end-to-end tests to build realistic container bytes without depending on
// any NBT library (the production reader is hand-written too; the test
// writer mirrors it so the two stay honest about the wire format).

const (
	tagEnd byte = iota
	tagByte
	tagShort
	tagInt
	tagLong
	tagFloat
	tagDouble
	tagByteArray
	tagString
	tagList
	tagCompound
	tagIntArray
	tagLongArray
)

type nbtWriter struct {
	buf []byte
}

func (w *nbtWriter) u8(v byte)   { w.buf = append(w.buf, v) }
func (w *nbtWriter) i16(v int16) { w.buf = append(w.buf, byte(v>>8), byte(v)) }
func (w *nbtWriter) i32(v int32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
func (w *nbtWriter) i64(v int64) {
	for i := 7; i >= 0; i-- {
		w.buf = append(w.buf, byte(v>>(uint(i)*8)))
	}
}
func (w *nbtWriter) str(s string) {
	w.i16(int16(len(s)))
	w.buf = append(w.buf, s...)
}
func (w *nbtWriter) fieldHeader(kind byte, name string) {
	w.u8(kind)
	w.str(name)
}
func (w *nbtWriter) shortField(name string, v int16) {
	w.fieldHeader(tagShort, name)
	w.i16(v)
}
func (w *nbtWriter) byteArrayField(name string, data []byte) {
	w.fieldHeader(tagByteArray, name)
	w.i32(int32(len(data)))
	w.buf = append(w.buf, data...)
}
func (w *nbtWriter) longArrayField(name string, data []int64) {
	w.fieldHeader(tagLongArray, name)
	w.i32(int32(len(data)))
	for _, v := range data {
		w.i64(v)
	}
}
func (w *nbtWriter) end() { w.u8(tagEnd) }

// paletteListField writes a named List of Compound entries, each with a
// single String field "Name".
func (w *nbtWriter) paletteListField(name string, names []string) {
	w.fieldHeader(tagList, name)
	w.u8(tagCompound)
	w.i32(int32(len(names)))
	for _, n := range names {
		w.fieldHeader(tagString, "Name")
		w.str(n)
		w.end()
	}
}

// buildModernSchematic assembles a root compound using the palette+varint
// dialect: Width/Height/Length as Short, Palette as a list of named
// compounds, BlockData as a LEB128-varint byte array.
func buildModernSchematic(width, height, length int16, palette []string, cells []uint32) []byte {
	w := &nbtWriter{}
	w.u8(tagCompound)
	w.str("")
	w.shortField("Width", width)
	w.shortField("Height", height)
	w.shortField("Length", length)
	w.paletteListField("Palette", palette)
	w.byteArrayField("BlockData", schematic.EncodeLEB128(cells))
	w.end()
	return w.buf
}

package schematic

import (
	"math/bits"

	"github.com/pilecraft/schemwright/schemerr"
)

// BitsPerEntry returns the packed-long entry width for a palette of the
// given size: at least 4 bits, otherwise the smallest width that can index
// every palette entry.
func BitsPerEntry(paletteSize int) int {
	if paletteSize < 1 {
		paletteSize = 1
	}
	n := bits.Len(uint(paletteSize - 1))
	if n < 4 {
		n = 4
	}
	return n
}

// DecodePackedLongs unpacks count bits-per-entry-wide unsigned values from
// longs. Entries are allowed to straddle a 64-bit word boundary: the low
// bits of an entry live in the current long and any remaining high bits are
// spliced in from the low bits of the next long. This is the canonical
// packing used by the modern dialect's BlockStates array.
func DecodePackedLongs(longs []int64, count, bitsPerEntry int) ([]uint32, error) {
	if bitsPerEntry <= 0 || bitsPerEntry > 32 {
		return nil, schemerr.Newf(schemerr.UnsupportedEncoding, "invalid bits-per-entry %d", bitsPerEntry)
	}
	mask := uint64(1)<<uint(bitsPerEntry) - 1
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		bitIndex := i * bitsPerEntry
		longIndex := bitIndex / 64
		startBit := bitIndex % 64
		if longIndex >= len(longs) {
			return nil, schemerr.Newf(schemerr.DimensionMismatch, "packed long array too short: need long %d for cell %d, have %d", longIndex, i, len(longs))
		}
		lo := uint64(longs[longIndex])
		value := (lo >> uint(startBit)) & mask

		if startBit+bitsPerEntry > 64 {
			if longIndex+1 >= len(longs) {
				return nil, schemerr.Newf(schemerr.DimensionMismatch, "packed long array too short: need long %d for straddled cell %d, have %d", longIndex+1, i, len(longs))
			}
			hi := uint64(longs[longIndex+1])
			remaining := uint(bitsPerEntry - (64 - startBit))
			value |= (hi & (uint64(1)<<remaining - 1)) << uint(64-startBit)
		}
		out[i] = uint32(value)
	}
	return out, nil
}

// EncodePackedLongs is the inverse of DecodePackedLongs, used by round-trip
// tests.
func EncodePackedLongs(values []uint32, bitsPerEntry int) []int64 {
	count := len(values)
	totalBits := count * bitsPerEntry
	longCount := (totalBits + 63) / 64
	acc := make([]uint64, longCount)
	mask := uint64(1)<<uint(bitsPerEntry) - 1
	for i, v := range values {
		bitIndex := i * bitsPerEntry
		longIndex := bitIndex / 64
		startBit := bitIndex % 64
		val := uint64(v) & mask
		acc[longIndex] |= val << uint(startBit)
		if startBit+bitsPerEntry > 64 {
			acc[longIndex+1] |= val >> uint(64-startBit)
		}
	}
	out := make([]int64, longCount)
	for i, u := range acc {
		out[i] = int64(u)
	}
	return out
}

// DecodeLEB128 reads count unsigned LEB128 varints from data: seven
// payload bits per byte, continuation signalled by the high bit.
func DecodeLEB128(data []byte, count int) ([]uint32, error) {
	out := make([]uint32, 0, count)
	pos := 0
	for len(out) < count {
		var value uint32
		var shift uint
		for {
			if pos >= len(data) {
				return nil, schemerr.New(schemerr.DimensionMismatch, "varint block data ended before all cells were read")
			}
			b := data[pos]
			pos++
			if shift > 35 {
				return nil, schemerr.New(schemerr.MalformedContainer, "varint exceeded maximum width")
			}
			value |= uint32(b&0x7F) << shift
			shift += 7
			if b&0x80 == 0 {
				break
			}
		}
		out = append(out, value)
	}
	return out, nil
}

// EncodeLEB128 is the inverse of DecodeLEB128, used by round-trip tests.
func EncodeLEB128(values []uint32) []byte {
	var out []byte
	for _, v := range values {
		for {
			b := byte(v & 0x7F)
			v >>= 7
			if v != 0 {
				b |= 0x80
			}
			out = append(out, b)
			if v == 0 {
				break
			}
		}
	}
	return out
}

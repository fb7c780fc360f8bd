package schematic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsPerEntry(t *testing.T) {
	require.Equal(t, 4, BitsPerEntry(1))
	require.Equal(t, 4, BitsPerEntry(16))
	require.Equal(t, 5, BitsPerEntry(17))
	require.Equal(t, 5, BitsPerEntry(32))
	require.Equal(t, 6, BitsPerEntry(33))
}

func TestPackedLongsRoundTrip(t *testing.T) {
	for _, bpe := range []int{4, 5, 7, 9, 13} {
		values := make([]uint32, 137)
		max := uint32(1)<<uint(bpe) - 1
		for i := range values {
			values[i] = uint32(i) % (max + 1)
		}
		longs := EncodePackedLongs(values, bpe)
		decoded, err := DecodePackedLongs(longs, len(values), bpe)
		require.NoError(t, err)
		require.Equal(t, values, decoded)
	}
}

func TestPackedLongsStraddlingExact(t *testing.T) {
	// bitsPerEntry=5 does not divide 64 evenly, so entry 12 straddles
	// longs[0]/longs[1] (bitIndex 60, 4 bits in longs[0] and 1 in longs[1]).
	values := make([]uint32, 20)
	for i := range values {
		values[i] = uint32(i % 32)
	}
	longs := EncodePackedLongs(values, 5)
	decoded, err := DecodePackedLongs(longs, len(values), 5)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestPackedLongsTruncated(t *testing.T) {
	_, err := DecodePackedLongs([]int64{0}, 20, 5)
	require.Error(t, err)
}

func TestLEB128RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 16384, 2097151, 4294967295}
	data := EncodeLEB128(values)
	decoded, err := DecodeLEB128(data, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestLEB128TruncatedFails(t *testing.T) {
	data := EncodeLEB128([]uint32{300})
	_, err := DecodeLEB128(data[:len(data)-1], 1)
	require.Error(t, err)
}

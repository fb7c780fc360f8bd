package schematic

import (
	"testing"

	"github.com/pilecraft/schemwright/tagtree"
	"github.com/stretchr/testify/require"
)

func intTag(v int32) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindInt, Value: v}
}

func shortTag(v int16) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindShort, Value: v}
}

func strTag(v string) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindString, Value: v}
}

func byteArrayTag(v []byte) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindByteArray, Value: v}
}

func longArrayTag(v []int64) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindLongArray, Value: v}
}

func listTag(elemKind tagtree.Kind, items []*tagtree.Tag) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindList, Value: &tagtree.List{ElemKind: elemKind, Items: items}}
}

func compoundTag(c tagtree.Compound) *tagtree.Tag {
	return &tagtree.Tag{Kind: tagtree.KindCompound, Value: c}
}

func TestLoadClassic1x1x1(t *testing.T) {
	root := compoundTag(tagtree.Compound{
		"Width":  shortTag(1),
		"Height": shortTag(1),
		"Length": shortTag(1),
		"Blocks": byteArrayTag([]byte{1}),
		"Data":   byteArrayTag([]byte{0}),
	})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, DialectClassic, vol.Dialect)
	require.Equal(t, 1, vol.Count())
	require.Equal(t, uint16(1), vol.LegacyIDs[0])
	require.Equal(t, byte(0), vol.LegacyData[0])
}

func TestLoadClassicAddBlocks(t *testing.T) {
	root := compoundTag(tagtree.Compound{
		"Width":     shortTag(2),
		"Height":    shortTag(1),
		"Length":    shortTag(1),
		"Blocks":    byteArrayTag([]byte{0xFF, 0x01}),
		"AddBlocks": byteArrayTag([]byte{0x01}), // low nibble -> cell 0 high byte 1, high nibble -> cell 1 high byte 0
	})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1FF), vol.LegacyIDs[0])
	require.Equal(t, uint16(0x001), vol.LegacyIDs[1])
}

func TestLoadModernListPalette(t *testing.T) {
	palette := listTag(tagtree.KindCompound, []*tagtree.Tag{
		compoundTag(tagtree.Compound{"Name": strTag("minecraft:air")}),
		compoundTag(tagtree.Compound{"Name": strTag("minecraft:stone")}),
	})
	longs := EncodePackedLongs([]uint32{1, 0}, BitsPerEntry(2))

	root := compoundTag(tagtree.Compound{
		"Width":       shortTag(2),
		"Height":      shortTag(1),
		"Length":      shortTag(1),
		"Palette":     palette,
		"BlockStates": longArrayTag(longs),
	})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, DialectModern, vol.Dialect)
	require.Equal(t, []string{"minecraft:air", "minecraft:stone"}, vol.Palette)
	require.Equal(t, uint32(1), vol.Cells[0])
	require.Equal(t, uint32(0), vol.Cells[1])
}

func TestLoadModernCompoundPaletteNotTransposed(t *testing.T) {
	paletteCompound := tagtree.Compound{
		"minecraft:air":   intTag(0),
		"minecraft:stone": intTag(1),
	}
	root := compoundTag(tagtree.Compound{
		"Width":     shortTag(1),
		"Height":    shortTag(1),
		"Length":    shortTag(1),
		"Palette":   compoundTag(paletteCompound),
		"BlockData": byteArrayTag([]byte{1}),
	})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, "minecraft:air", vol.Palette[0])
	require.Equal(t, "minecraft:stone", vol.Palette[1])
}

func TestLoadStatesWrapped(t *testing.T) {
	blocks := compoundTag(tagtree.Compound{
		"Palette": listTag(tagtree.KindCompound, []*tagtree.Tag{
			compoundTag(tagtree.Compound{"Name": strTag("minecraft:air")}),
			compoundTag(tagtree.Compound{"Name": strTag("minecraft:stone")}),
		}),
		"BlockData": byteArrayTag([]byte{1}),
	})
	root := compoundTag(tagtree.Compound{
		"Width":  shortTag(1),
		"Height": shortTag(1),
		"Length": shortTag(1),
		"Blocks": blocks,
	})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, DialectStatesWrapped, vol.Dialect)
	require.Equal(t, uint32(1), vol.Cells[0])
}

func TestLoadSchematicWrapperUnwraps(t *testing.T) {
	inner := compoundTag(tagtree.Compound{
		"Width":  shortTag(1),
		"Height": shortTag(1),
		"Length": shortTag(1),
		"Blocks": byteArrayTag([]byte{5}),
		"Data":   byteArrayTag([]byte{0}),
	})
	root := compoundTag(tagtree.Compound{"Schematic": inner})

	vol, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, DialectClassic, vol.Dialect)
	require.Equal(t, uint16(5), vol.LegacyIDs[0])
}

func TestLoadUnknownDialectErrors(t *testing.T) {
	root := compoundTag(tagtree.Compound{
		"SomeUnrelatedField": strTag("nonsense"),
	})
	_, err := Load(root)
	require.Error(t, err)
}

func TestLoadDimensionMismatch(t *testing.T) {
	root := compoundTag(tagtree.Compound{
		"Width":  shortTag(2),
		"Height": shortTag(1),
		"Length": shortTag(1),
		"Blocks": byteArrayTag([]byte{1}), // should be length 2
	})
	_, err := Load(root)
	require.Error(t, err)
}

package schematic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pilecraft/schemwright/schemerr"
	"github.com/pilecraft/schemwright/tagtree"
)

// Load classifies root (the top-level compound of a parsed container) and
// materializes it into a dense Volume.
func Load(root *tagtree.Tag) (*Volume, error) {
	rc, ok := root.Compound()
	if !ok {
		return nil, schemerr.New(schemerr.MalformedContainer, "root tag is not a compound")
	}

	dialect, work, dims := classify(rc)

	width, height, length, err := dimensions(dims)
	if err != nil {
		return nil, err
	}
	count := width * height * length

	switch dialect {
	case DialectClassic:
		return loadClassic(work, width, height, length, count)
	case DialectModern, DialectStatesWrapped:
		return loadModern(dialect, work, width, height, length, count)
	default:
		// Fallback: a root that carries a palette is decoded with modern
		// semantics (decodeCells then reports a missing block array); only
		// the root is checked.
		if hasAny(work, "Palette", "BlockStatePalette") {
			return loadModern(DialectFallback, work, width, height, length, count)
		}
		return nil, schemerr.New(schemerr.UnknownDialect, "root compound matches no known schematic dialect")
	}
}

func dimensions(c tagtree.Compound) (width, height, length int, err error) {
	if sizeTag, ok := c.Get("Size"); ok {
		if lst, ok := sizeTag.List(); ok && len(lst.Items) >= 3 {
			w, h, l := lst.Items[0], lst.Items[1], lst.Items[2]
			wi, _ := intValue(w)
			hi, _ := intValue(h)
			li, _ := intValue(l)
			return int(wi), int(hi), int(li), nil
		}
	}
	wTag, wok := c.Get("Width")
	hTag, hok := c.Get("Height")
	lTag, lok := c.Get("Length")
	if !wok || !hok || !lok {
		return 0, 0, 0, schemerr.New(schemerr.MalformedContainer, "missing Width/Height/Length")
	}
	w, ok := wTag.Int()
	if !ok {
		return 0, 0, 0, schemerr.New(schemerr.MalformedContainer, "Width is not an integer tag")
	}
	h, ok := hTag.Int()
	if !ok {
		return 0, 0, 0, schemerr.New(schemerr.MalformedContainer, "Height is not an integer tag")
	}
	l, ok := lTag.Int()
	if !ok {
		return 0, 0, 0, schemerr.New(schemerr.MalformedContainer, "Length is not an integer tag")
	}
	if w < 0 || h < 0 || l < 0 {
		return 0, 0, 0, schemerr.Newf(schemerr.MalformedContainer, "negative dimensions %d x %d x %d", w, h, l)
	}
	return int(w), int(h), int(l), nil
}

func intValue(t *tagtree.Tag) (int64, bool) {
	return t.Int()
}

// loadClassic decodes the legacy numeric-id + 4-bit metadata dialect, with
// an optional AddBlocks/Add high nibble extending ids past 255.
func loadClassic(c tagtree.Compound, width, height, length, count int) (*Volume, error) {
	blocksTag, ok := c.Get("Blocks")
	if !ok {
		blocksTag, ok = c.Get("BlockData")
	}
	if !ok {
		return nil, schemerr.New(schemerr.MalformedContainer, "classic schematic missing Blocks array")
	}
	blocks, ok := blocksTag.ByteArray()
	if !ok {
		return nil, schemerr.New(schemerr.MalformedContainer, "classic Blocks tag is not a byte array")
	}
	if len(blocks) != count {
		return nil, schemerr.Newf(schemerr.DimensionMismatch, "classic Blocks length %d does not match volume %d", len(blocks), count)
	}

	ids := make([]uint16, count)
	for i, b := range blocks {
		ids[i] = uint16(b)
	}

	var addHigh []byte
	if addTag, ok := c.Get("AddBlocks"); ok {
		addHigh, _ = addTag.ByteArray()
	} else if addTag, ok := c.Get("Add"); ok {
		addHigh, _ = addTag.ByteArray()
	}
	if addHigh != nil {
		if len(addHigh) < (count+1)/2 {
			return nil, schemerr.Newf(schemerr.DimensionMismatch, "classic AddBlocks length %d is too short for volume %d", len(addHigh), count)
		}
		for i := range ids {
			nibble := addHigh[i/2]
			if i%2 == 0 {
				nibble &= 0x0F
			} else {
				nibble = (nibble >> 4) & 0x0F
			}
			ids[i] |= uint16(nibble) << 8
		}
	}

	data := make([]byte, count)
	if dataTag, ok := c.Get("Data"); ok {
		raw, ok := dataTag.ByteArray()
		if ok && len(raw) == count {
			for i, b := range raw {
				data[i] = b & 0x0F
			}
		}
	}

	return &Volume{
		Dialect:    DialectClassic,
		Width:      width,
		Height:     height,
		Length:     length,
		LegacyIDs:  ids,
		LegacyData: data,
	}, nil
}

// loadModern decodes the palette + packed-cells dialects shared by
// DialectModern, DialectStatesWrapped, and DialectFallback.
func loadModern(dialect Dialect, c tagtree.Compound, width, height, length, count int) (*Volume, error) {
	palette, err := materializePalette(c)
	if err != nil {
		return nil, err
	}

	cells, err := decodeCells(c, count, len(palette))
	if err != nil {
		return nil, err
	}

	return &Volume{
		Dialect: dialect,
		Width:   width,
		Height:  height,
		Length:  length,
		Palette: palette,
		Cells:   cells,
	}, nil
}

func materializePalette(c tagtree.Compound) ([]string, error) {
	paletteTag, ok := c.Get("Palette")
	if !ok {
		paletteTag, ok = c.Get("BlockStatePalette")
	}
	if !ok {
		return nil, schemerr.New(schemerr.MalformedContainer, "missing block palette")
	}

	if lst, ok := paletteTag.List(); ok {
		out := make([]string, len(lst.Items))
		for i, item := range lst.Items {
			desc, err := descriptorFromListEntry(item)
			if err != nil {
				return nil, fmt.Errorf("palette entry %d: %w", i, err)
			}
			out[i] = desc
		}
		return out, nil
	}

	if pc, ok := paletteTag.Compound(); ok {
		// Descriptor string is the key, numeric index is the value. Do
		// not transpose these: the index always comes from the tag's
		// integer value, never from its name.
		max := -1
		indexed := make(map[int]string, len(pc))
		for descriptor, idxTag := range pc {
			idx, ok := idxTag.Int()
			if !ok {
				return nil, schemerr.Newf(schemerr.MalformedContainer, "palette entry %q has non-integer index", descriptor)
			}
			indexed[int(idx)] = descriptor
			if int(idx) > max {
				max = int(idx)
			}
		}
		out := make([]string, max+1)
		for idx, descriptor := range indexed {
			out[idx] = descriptor
		}
		return out, nil
	}

	return nil, schemerr.New(schemerr.MalformedContainer, "palette is neither a list nor a compound")
}

func descriptorFromListEntry(item *tagtree.Tag) (string, error) {
	if s, ok := item.String(); ok {
		return s, nil
	}
	cv, ok := item.Compound()
	if !ok {
		return "", schemerr.New(schemerr.MalformedContainer, "palette list entry is neither a string nor a compound")
	}
	nameTag, ok := cv.Get("Name")
	if !ok {
		return "", schemerr.New(schemerr.MalformedContainer, "palette list entry missing Name")
	}
	name, ok := nameTag.String()
	if !ok {
		return "", schemerr.New(schemerr.MalformedContainer, "palette list entry Name is not a string")
	}

	propsTag, ok := cv.Get("Properties")
	if !ok {
		return name, nil
	}
	propsCompound, ok := propsTag.Compound()
	if !ok {
		return name, nil
	}
	keys := make([]string, 0, len(propsCompound))
	for k := range propsCompound {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	if len(keys) > 0 {
		sb.WriteByte('[')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			v, _ := propsCompound[k].String()
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(v)
		}
		sb.WriteByte(']')
	}
	return sb.String(), nil
}

func decodeCells(c tagtree.Compound, count, paletteSize int) ([]uint32, error) {
	if longsTag, ok := c.Get("BlockStates"); ok {
		longs, ok := longsTag.LongArray()
		if !ok {
			return nil, schemerr.New(schemerr.UnsupportedEncoding, "BlockStates is not a long array")
		}
		bpe := BitsPerEntry(paletteSize)
		return DecodePackedLongs(longs, count, bpe)
	}

	if dataTag, ok := c.Get("BlockData"); ok {
		raw, ok := dataTag.ByteArray()
		if !ok {
			return nil, schemerr.New(schemerr.UnsupportedEncoding, "BlockData is not a byte array")
		}
		return DecodeLEB128(raw, count)
	}

	if blocksTag, ok := c.Get("Blocks"); ok {
		return decodeRawCellArray(blocksTag, count)
	}

	if dataTag, ok := c.Get("Data"); ok {
		return decodeRawCellArray(dataTag, count)
	}

	return nil, schemerr.New(schemerr.MalformedContainer, "no recognised block-index encoding present")
}

func decodeRawCellArray(tag *tagtree.Tag, count int) ([]uint32, error) {
	if ints, ok := tag.IntArray(); ok {
		if len(ints) != count {
			return nil, schemerr.Newf(schemerr.DimensionMismatch, "int array length %d does not match volume %d", len(ints), count)
		}
		out := make([]uint32, count)
		for i, v := range ints {
			out[i] = uint32(v)
		}
		return out, nil
	}
	if raw, ok := tag.ByteArray(); ok {
		if len(raw) == count {
			out := make([]uint32, count)
			for i, b := range raw {
				out[i] = uint32(b)
			}
			return out, nil
		}
		return DecodeLEB128(raw, count)
	}
	return nil, schemerr.New(schemerr.MalformedContainer, "block index array is neither an int array nor a byte array")
}

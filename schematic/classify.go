package schematic

import "github.com/pilecraft/schemwright/tagtree"

// unwrapSchematic descends into a root compound's sole "Schematic" child,
// if that is the root's only field, mirroring the common WorldEdit
// sponge-v1 wrapping convention.
func unwrapSchematic(root tagtree.Compound) tagtree.Compound {
	if len(root) != 1 {
		return root
	}
	child, ok := root.Get("Schematic")
	if !ok {
		return root
	}
	if cv, ok := child.Compound(); ok {
		return cv
	}
	return root
}

func hasAny(c tagtree.Compound, keys ...string) bool {
	for _, k := range keys {
		if _, ok := c[k]; ok {
			return true
		}
	}
	return false
}

func hasAll(c tagtree.Compound, keys ...string) bool {
	for _, k := range keys {
		if _, ok := c[k]; !ok {
			return false
		}
	}
	return true
}

// classify determines the dialect of a (possibly Schematic-unwrapped) root
// compound. It returns the compound that palette/cell field lookups should
// proceed against (the root itself, or its nested "Blocks" compound for the
// states_wrapped dialect), and separately the compound that carries the
// Width/Height/Length/Size dimension fields, which for states_wrapped always
// remain on the enclosing compound rather than the nested one.
func classify(root tagtree.Compound) (dialect Dialect, fields, dims tagtree.Compound) {
	work := unwrapSchematic(root)

	if blocksTag, ok := work.Get("Blocks"); ok {
		if bc, ok := blocksTag.Compound(); ok {
			if hasAny(bc, "Palette", "BlockStatePalette", "BlockStates", "BlockData", "Data") {
				return DialectStatesWrapped, bc, work
			}
		}
	}

	if hasAny(work, "Palette", "BlockStatePalette") && hasAny(work, "BlockStates", "BlockData", "Blocks", "Data") {
		return DialectModern, work, work
	}

	if hasAll(work, "Width", "Height", "Length") && hasAny(work, "Blocks", "Data", "BlockData") {
		return DialectClassic, work, work
	}

	return DialectFallback, work, work
}

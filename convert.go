// Package schemwright converts a Java-edition schematic container into a
// stream of Bedrock-edition setblock/fill commands: decompress, parse the
// tag tree, classify the dialect and materialize a voxel grid, translate
// the Java block palette to Bedrock descriptors, find the coordinate
// origin, and greedily emit the minimal command stream relative to it.
package schemwright

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"

	"github.com/pilecraft/schemwright/decompress"
	"github.com/pilecraft/schemwright/merge"
	"github.com/pilecraft/schemwright/schemerr"
	"github.com/pilecraft/schemwright/schematic"
	"github.com/pilecraft/schemwright/tagtree"
	"github.com/pilecraft/schemwright/translate"
)

// Convert reads a complete schematic container from r and writes one
// command per emitted box to w. It returns a classified *schemerr.Error for
// any fatal condition (malformed container, unknown dialect, dimension
// mismatch, unsupported encoding); recoverable conditions are absorbed
// silently into the pipeline.
func Convert(r io.Reader, w io.Writer, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	id := uuid.NewString()
	log := cfg.logger.WithField("conversion_id", id)

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	log.Debug("decompressing input")
	plain := decompress.Decompress(raw)
	cfg.report("decompress", 1.0/6)

	log.Debug("parsing tag tree")
	root, err := tagtree.Parse(plain)
	if err != nil {
		return fmt.Errorf("parse tag tree: %w", err)
	}
	if root == nil {
		return schemerr.New(schemerr.MalformedContainer, "input contains no root tag")
	}
	cfg.report("parse", 2.0/6)

	log.Debug("classifying dialect and materializing volume")
	vol, err := schematic.Load(root)
	if err != nil {
		return fmt.Errorf("load schematic: %w", err)
	}
	cfg.report("classify", 3.0/6)

	log.WithFields(logFields(vol)).Info("loaded volume")

	tr := translate.NewTranslator(cfg.blocks, cfg.legacy)
	keyOf := buildKeyFunc(vol, tr)
	index := vol.Index
	cfg.report("translate", 4.0/6)

	originX, originY, originZ := merge.FindOrigin(vol.Width, vol.Height, vol.Length, index, keyOf)
	origin := cube.Pos{originX, originY, originZ}
	cfg.report("origin", 5.0/6)

	bw := bufio.NewWriter(w)
	if err := merge.Emit(vol.Width, vol.Height, vol.Length, index, keyOf, origin, bw); err != nil {
		return fmt.Errorf("emit commands: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	cfg.report("merge", 1.0)

	log.Info("conversion complete")
	return nil
}

func buildKeyFunc(vol *schematic.Volume, tr *translate.Translator) merge.KeyFunc {
	if vol.Dialect == schematic.DialectClassic {
		return func(i int) (string, bool) {
			return tr.TranslateLegacy(int(vol.LegacyIDs[i]), int(vol.LegacyData[i]))
		}
	}
	return func(i int) (string, bool) {
		idx := int(vol.Cells[i])
		if idx < 0 || idx >= len(vol.Palette) {
			return "", false
		}
		return tr.TranslateIndex(idx, vol.Palette[idx])
	}
}

func logFields(vol *schematic.Volume) map[string]any {
	return map[string]any{
		"dialect": vol.Dialect.String(),
		"width":   vol.Width,
		"height":  vol.Height,
		"length":  vol.Length,
	}
}

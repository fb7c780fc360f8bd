// Package translate maps Java block descriptors (and legacy numeric
// id/data pairs) to Bedrock block descriptors, driven by a curated,
// state-dispatching TranslationEntry table.
package translate

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/df-mc/jsonc"
)

// TranslationEntry describes how to translate one Java block name into its
// Bedrock counterpart. Every field is optional; a zero-value entry leaves
// the name and state list unchanged.
type TranslationEntry struct {
	// Name overrides the Bedrock block name outright, overridden in turn
	// by a successful Mapping dispatch.
	Name string `json:"name,omitempty"`

	// Identifier lists the Java state keys consulted, in order, to walk
	// Mapping. Its length is the dispatch tree's depth.
	Identifier []string `json:"identifier,omitempty"`

	// Mapping is the nested dispatch tree: at depth i it is a
	// map[string]any keyed by the value of Identifier[i] (or "def" as a
	// fallback); at the final depth, each value is a leaf — either a bare
	// Bedrock name string, or an object carrying "name" plus any of
	// additions/removals/renames/remaps local to that leaf.
	Mapping any `json:"mapping,omitempty"`

	// Defaults fills in a Java state key with a value when the decoded
	// block is missing it.
	Defaults map[string]string `json:"defaults,omitempty"`
	// Removals drops Java state keys outright before any further
	// processing.
	Removals []string `json:"removals,omitempty"`
	// Renames maps a Java state key to its Bedrock key name.
	Renames map[string]string `json:"renames,omitempty"`
	// Remaps maps a (post-rename, or pre-rename as a fallback) key to
	// either a list (indexed by the Java value parsed as an integer) or a
	// map (keyed by the literal Java value string) of substitute values.
	Remaps map[string]any `json:"remaps,omitempty"`
	// Additions are unconditional Bedrock key/value pairs appended to
	// every instance of this block, independent of its Java states.
	Additions map[string]any `json:"additions,omitempty"`
	// TileExtra names Java state keys that exist only to carry block
	// entity data and must be dropped from the emitted state list: the
	// map key is informational (the tile field family), the values are
	// the state keys to drop.
	TileExtra map[string][]string `json:"tile_extra,omitempty"`
}

// Table is an immutable, shared lookup from Java block name to
// TranslationEntry, loaded once at startup.
type Table struct {
	entries map[string]*TranslationEntry
}

// LoadTable reads a JSON-with-comments document mapping Java block names to
// TranslationEntry objects.
func LoadTable(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	clean := jsonc.ToJSON(raw)
	var entries map[string]*TranslationEntry
	if err := json.Unmarshal(clean, &entries); err != nil {
		return nil, err
	}
	return &Table{entries: entries}, nil
}

// lookup finds the entry for a normalized "minecraft:name" descriptor,
// falling back to a lookup without the namespace prefix.
func (t *Table) lookup(name string) *TranslationEntry {
	if t == nil {
		return nil
	}
	if e, ok := t.entries[name]; ok {
		return e
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		if e, ok := t.entries[name[i+1:]]; ok {
			return e
		}
	}
	return nil
}

package translate

import (
	"sort"
	"strconv"
	"strings"
)

var airSet = map[string]struct{}{
	"minecraft:air":      {},
	"minecraft:cave_air": {},
	"minecraft:void_air": {},
}

var invalidSet = map[string]struct{}{
	"minecraft:piston_head":   {},
	"minecraft:moving_block":  {},
	"minecraft:moving_piston": {},
}

func isAirOrInvalid(name string) bool {
	if _, ok := airSet[name]; ok {
		return true
	}
	_, ok := invalidSet[name]
	return ok
}

type cacheEntry struct {
	value string
	drop  bool
}

// Translator converts Java block descriptors to Bedrock descriptors,
// memoizing results for the lifetime of one conversion. Each Translator
// owns its cache; callers must not share one across conversions, as the
// same palette index can mean a different block in a different file.
type Translator struct {
	table       *Table
	legacy      *LegacyTable
	cache       map[int]cacheEntry
	legacyCache map[string]cacheEntry
}

// NewTranslator builds a Translator over a shared, read-only Table and
// optional LegacyTable.
func NewTranslator(table *Table, legacy *LegacyTable) *Translator {
	return &Translator{
		table:       table,
		legacy:      legacy,
		cache:       make(map[int]cacheEntry),
		legacyCache: make(map[string]cacheEntry),
	}
}

// TranslateIndex translates the Java descriptor owning palette index idx,
// memoizing by palette index rather than by descriptor string.
func (tr *Translator) TranslateIndex(idx int, javaDescriptor string) (string, bool) {
	if cached, ok := tr.cache[idx]; ok {
		return cached.value, !cached.drop
	}
	out, ok := tr.translate(javaDescriptor)
	if ok {
		tr.cache[idx] = cacheEntry{value: out}
	} else {
		tr.cache[idx] = cacheEntry{drop: true}
	}
	return out, ok
}

// TranslateLegacy translates a classic numeric id/4-bit-metadata pair via
// the legacy table, then the same Java-to-Bedrock pipeline.
func (tr *Translator) TranslateLegacy(id, data int) (string, bool) {
	key := legacyKey(id, data)
	if cached, ok := tr.legacyCache[key]; ok {
		return cached.value, !cached.drop
	}

	javaName, ok := tr.legacy.Lookup(id, data)
	if !ok {
		tr.legacyCache[key] = cacheEntry{drop: true}
		return "", false
	}

	out, ok := tr.translate(javaName)
	if ok {
		tr.legacyCache[key] = cacheEntry{value: out}
	} else {
		tr.legacyCache[key] = cacheEntry{drop: true}
	}
	return out, ok
}

// translate runs the full Java-descriptor-to-Bedrock-descriptor pipeline.
func (tr *Translator) translate(javaDescriptor string) (string, bool) {
	name, states := parseDescriptor(javaDescriptor)
	name = normalizeName(name)
	if isAirOrInvalid(name) {
		return "", false
	}

	entry := tr.table.lookup(name)

	// Step: apply defaults only where the state is missing.
	if entry != nil {
		for k, v := range entry.Defaults {
			if _, ok := states[k]; !ok {
				states[k] = v
			}
		}
		// Step: unconditional removals, and tile_extra state keys that
		// only exist to carry block entity data.
		for _, k := range entry.Removals {
			delete(states, k)
		}
		for _, keys := range entry.TileExtra {
			for _, k := range keys {
				delete(states, k)
			}
		}
	}

	bedrockName := name
	var additions map[string]any
	var removals []string
	var renames map[string]string
	var remaps map[string]any
	if entry != nil {
		additions = entry.Additions
		removals = entry.Removals
		renames = entry.Renames
		remaps = entry.Remaps
		if entry.Name != "" {
			bedrockName = entry.Name
		}
	}

	// Step: nested-mapping dispatch. A matched leaf's own
	// additions/removals/renames/remaps extend — but never replace, and
	// never mutate the shared entry — the ones already gathered above.
	// Contributions are local to this one call.
	if l, ok := dispatch(entry, states); ok {
		if l.name != "" {
			bedrockName = l.name
		}
		additions = mergeAny(additions, l.additions)
		removals = append(append([]string{}, removals...), l.removals...)
		renames = mergeStr(renames, l.renames)
		remaps = mergeAny(remaps, l.remaps)
		for _, k := range entry.Identifier {
			delete(states, k)
		}
	}

	for _, k := range removals {
		delete(states, k)
	}

	pairs := buildStatePairs(states, renames, remaps)
	pairs = append(pairs, buildAdditionPairs(additions)...)
	sort.Strings(pairs)

	full := bedrockName
	if len(pairs) > 0 {
		full += "[" + strings.Join(pairs, ",") + "]"
	}

	if isAirOrInvalid(bareName(full)) {
		return "", false
	}

	return strings.TrimPrefix(full, "minecraft:"), true
}

func buildStatePairs(states map[string]string, renames map[string]string, remaps map[string]any) []string {
	keys := make([]string, 0, len(states))
	for k := range states {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := states[k]
		outKey := k
		if renamed, ok := renames[k]; ok {
			outKey = renamed
		}

		var outVal any = v
		if rule, ok := remaps[outKey]; ok {
			if sub, ok := applyRemap(rule, v); ok {
				outVal = sub
			}
		} else if rule, ok := remaps[k]; ok {
			if sub, ok := applyRemap(rule, v); ok {
				outVal = sub
			}
		}

		pairs = append(pairs, formatPair(outKey, outVal))
	}
	return pairs
}

func buildAdditionPairs(additions map[string]any) []string {
	keys := make([]string, 0, len(additions))
	for k := range additions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, formatPair(k, additions[k]))
	}
	return out
}

func formatPair(k string, v any) string {
	return strconv.Quote(k) + "=" + formatValue(v)
}

func mergeAny(base, extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeStr(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func parseDescriptor(d string) (name string, states map[string]string) {
	states = make(map[string]string)
	idx := strings.IndexByte(d, '[')
	if idx < 0 {
		return d, states
	}
	name = d[:idx]
	rest := strings.TrimSuffix(d[idx+1:], "]")
	if rest == "" {
		return name, states
	}
	for _, part := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		states[k] = v
	}
	return name, states
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	return name
}

func bareName(descriptor string) string {
	if idx := strings.IndexByte(descriptor, '['); idx >= 0 {
		return descriptor[:idx]
	}
	return descriptor
}

package translate

import (
	"fmt"
	"strconv"
)

// leaf is what a successful Mapping dispatch resolves to: a Bedrock name
// plus any local extensions to the entry's additions/removals/renames/
// remaps, scoped to this one translate call only.
type leaf struct {
	name      string
	additions map[string]any
	removals  []string
	renames   map[string]string
	remaps    map[string]any
}

// dispatch walks entry's Mapping tree one identifier at a time, consulting
// states for each key in turn and falling back to the "def" branch when the
// block's own value is absent from the tree. It reports ok=false if no
// leaf could be reached.
func dispatch(entry *TranslationEntry, states map[string]string) (leaf, bool) {
	if entry == nil || entry.Mapping == nil || len(entry.Identifier) == 0 {
		return leaf{}, false
	}

	var cur any = entry.Mapping
	for depth, key := range entry.Identifier {
		node, ok := cur.(map[string]any)
		if !ok {
			return leaf{}, false
		}
		val := states[key]
		branch, ok := node[val]
		if !ok {
			branch, ok = node["def"]
		}
		if !ok {
			return leaf{}, false
		}

		if depth == len(entry.Identifier)-1 {
			return leafFromValue(branch), true
		}
		cur = branch
	}
	return leaf{}, false
}

func leafFromValue(v any) leaf {
	switch t := v.(type) {
	case string:
		return leaf{name: t}
	case map[string]any:
		l := leaf{}
		if name, ok := t["name"].(string); ok {
			l.name = name
		}
		if a, ok := t["additions"].(map[string]any); ok {
			l.additions = a
		}
		if r, ok := t["removals"].([]any); ok {
			l.removals = toStringSlice(r)
		}
		if r, ok := t["renames"].(map[string]any); ok {
			l.renames = toStringMap(r)
		}
		if r, ok := t["remaps"].(map[string]any); ok {
			l.remaps = r
		}
		return l
	default:
		return leaf{}
	}
}

func toStringSlice(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toStringMap(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// applyRemap substitutes a Java state value v through a remap rule, which
// is either a list indexed by v parsed as an integer, or a map keyed by the
// literal string v.
func applyRemap(rule any, v string) (any, bool) {
	switch r := rule.(type) {
	case []any:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n >= len(r) {
			return nil, false
		}
		return r[n], true
	case map[string]any:
		out, ok := r[v]
		return out, ok
	default:
		return nil, false
	}
}

// formatValue renders a state value the way the emitted command stream
// expects: unquoted for numbers and booleans, quoted otherwise.
func formatValue(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		if isBoolToken(t) || isNumberToken(t) {
			return t
		}
		return strconv.Quote(t)
	default:
		return strconv.Quote(fmt.Sprint(t))
	}
}

func isBoolToken(s string) bool {
	return s == "true" || s == "false"
}

func isNumberToken(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

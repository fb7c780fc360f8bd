package translate

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/df-mc/jsonc"
)

// LegacyTable maps a classic numeric block id and 4-bit metadata value to
// the Java block descriptor it represents.
type LegacyTable struct {
	entries map[string]string
}

// LoadLegacyTable reads a JSON-with-comments document mapping "id:data"
// strings to Java block descriptors.
func LoadLegacyTable(r io.Reader) (*LegacyTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	clean := jsonc.ToJSON(raw)
	var entries map[string]string
	if err := json.Unmarshal(clean, &entries); err != nil {
		return nil, err
	}
	return &LegacyTable{entries: entries}, nil
}

// Lookup returns the Java descriptor for a legacy id/data pair.
func (t *LegacyTable) Lookup(id, data int) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[legacyKey(id, data)]
	return v, ok
}

func legacyKey(id, data int) string {
	return fmt.Sprintf("%d:%d", id, data)
}

package extract

import (
	"encoding/json"
	"strings"
)

// Sanitize decodes a native engine document and strips underscore-prefixed
// bookkeeping keys ("_type", "_version", ...) at every level. User-facing
// fields, including playlist "entries", are left untouched.
func Sanitize(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	stripPrivate(doc)
	return doc, nil
}

func stripPrivate(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			if strings.HasPrefix(k, "_") {
				delete(val, k)
				continue
			}
			stripPrivate(child)
		}
	case []any:
		for _, child := range val {
			stripPrivate(child)
		}
	}
}

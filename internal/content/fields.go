package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/zaqqye/agency_backend/internal/models"
)

// Fields is the open field mapping of a section.
type Fields = map[string]any

// normalize deep-copies f through JSON so every backend stores and returns
// the same value shapes (objects as maps, numbers as float64).
func normalize(f Fields) (Fields, error) {
	if len(f) == 0 {
		return Fields{}, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return out, nil
}

// clean drops metadata keys and rejects keys no backend can store.
func clean(f Fields) (Fields, error) {
	out := make(Fields, len(f))
	for k, v := range f {
		if models.IsReservedKey(k) {
			continue
		}
		if k == "" || strings.Contains(k, ".") || strings.HasPrefix(k, "$") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, k)
		}
		out[k] = v
	}
	return out, nil
}

func toJSONMap(f Fields) datatypes.JSONMap {
	if f == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(f)
}

// shallowMerge overwrites same-named top-level keys of dst with src.
func shallowMerge(dst datatypes.JSONMap, src Fields) datatypes.JSONMap {
	if dst == nil {
		dst = datatypes.JSONMap{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// isEmpty matches the values a page treats as "not set" and replaces with a
// default. false and 0 are real values.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// Merge backfills resolved with defaults. A resolved value wins when it is
// present and non-empty; keys only present in resolved are kept as is.
func Merge(defaults, resolved Fields) Fields {
	out := make(Fields, len(defaults)+len(resolved))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range resolved {
		if _, hasDefault := defaults[k]; hasDefault && isEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

package schema

import "encoding/json"

// FieldInfo is the serializable summary of one field declaration, used by
// catalog listings and the CLI.
type FieldInfo struct {
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Default     any      `json:"default,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Values      []string `json:"values,omitempty"`
}

// Summary flattens the schema into serializable field summaries.
func (s Schema) Summary() map[string]FieldInfo {
	if s == nil {
		return nil
	}

	out := make(map[string]FieldInfo, len(s))
	for key, field := range s {
		info := FieldInfo{
			Description: field.Description,
			Required:    field.Required,
			Default:     field.Default,
		}
		switch t := field.Type.(type) {
		case nil:
		case *NumberType:
			info.Kind = t.Name()
			info.Min = t.Min
			info.Max = t.Max
		case *EnumType:
			info.Kind = t.Name()
			info.Values = t.Values
		default:
			info.Kind = t.Name()
		}
		out[key] = info
	}
	return out
}

// MarshalJSON serializes the schema as a map of field names to summaries.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Summary())
}

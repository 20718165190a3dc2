package schema

import "sort"

// Field declares one named parameter: its kind, an optional description
// surfaced to clients, whether the caller must supply it, and an optional
// default applied when the caller omits it. A field with a default never
// fails the required check.
type Field struct {
	Type        Type
	Description string
	Required    bool
	Default     any
}

// Schema is a map of field names to their declarations.
// Example: {"symbol": {Type: String(), Required: true}}
type Schema map[string]Field

// Keys returns the field names in sorted order, keeping validation output
// deterministic.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Apply validates raw arguments against the schema and returns the
// normalized argument map: required fields checked, kinds and bounds
// validated, defaults filled in for absent optional fields, numbers
// normalized to float64. Unknown keys in raw are dropped. On violation it
// returns an AggregateError listing every failing field and a nil map.
//
// A nil or empty schema accepts any input and returns an empty map: tools
// without parameters ignore whatever the caller sends.
func Apply(s Schema, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s))
	var errs []error

	for _, key := range s.Keys() {
		field := s[key]

		value, present := raw[key]
		if !present {
			if field.Default != nil {
				out[key] = normalize(field.Type, field.Default)
				continue
			}
			if field.Required {
				errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			}
			continue
		}

		if field.Type == nil {
			errs = append(errs, &ValidationError{Key: key, Reason: "no kind declared", Value: value})
			continue
		}
		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
			continue
		}
		out[key] = normalize(field.Type, value)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

// Validate checks raw arguments against the schema, discarding the
// normalized map.
func Validate(s Schema, raw map[string]any) error {
	_, err := Apply(s, raw)
	return err
}

// normalize converts a validated value to its canonical representation:
// numbers become float64, everything else passes through unchanged.
func normalize(t Type, value any) any {
	if _, ok := t.(*NumberType); ok {
		if n, isNum := toFloat(value); isNum {
			return n
		}
	}
	return value
}

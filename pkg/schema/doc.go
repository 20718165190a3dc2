// Package schema provides a structural type system for tool parameters.
//
// It defines a small set of kinds (string, number, enum, bool) with optional
// numeric bounds, and a Field declaration adding requiredness, defaults and
// descriptions. Schemas map field names to declarations, enabling runtime
// validation and normalization of untyped call arguments.
//
// Basic usage:
//
//	params := schema.Schema{
//	    "prompt": {Type: schema.String(), Required: true},
//	    "steps":  {Type: schema.NumberBetween(4, 8), Default: 4},
//	}
//
//	args, err := schema.Apply(params, map[string]any{"prompt": "a lighthouse"})
//	// args == map[string]any{"prompt": "a lighthouse", "steps": float64(4)}
//
// Apply checks required fields, validates kinds and bounds, fills defaults
// for absent optional fields, normalizes numbers to float64 and drops
// unknown keys. Violations are aggregated so a caller sees every failing
// field at once.
//
// This package is designed to be library-agnostic, with zero external
// dependencies beyond the Go standard library. It can be embedded in larger
// systems or extracted as a standalone library.
package schema

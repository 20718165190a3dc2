// Package dto maps domain types to their wire representations.
package dto

import (
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// Tool is the serializable shape of a catalog entry: what an operator sees
// when listing tools, without handlers or guard functions.
type Tool struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description,omitempty"`
	ReadOnly    bool                        `json:"read_only,omitempty"`
	OpenWorld   bool                        `json:"open_world,omitempty"`
	Guarded     bool                        `json:"guarded,omitempty"`
	Params      map[string]schema.FieldInfo `json:"params,omitempty"`
}

// FromDescriptor flattens one descriptor into its wire shape.
func FromDescriptor(d domain.Descriptor) Tool {
	return Tool{
		Name:        d.Name,
		Description: d.Description,
		ReadOnly:    d.ReadOnly,
		OpenWorld:   d.OpenWorld,
		Guarded:     d.Guard != nil,
		Params:      d.Params.Summary(),
	}
}

// FromDescriptors converts a catalog, preserving order.
func FromDescriptors(ds []domain.Descriptor) []Tool {
	out := make([]Tool, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDescriptor(d))
	}
	return out
}

package builtin

import (
	"context"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// Add returns the add tool: the sum of two numbers as a text block. It is
// pure, makes no external calls and is visible to every identity.
func Add() domain.Descriptor {
	return domain.Descriptor{
		Name:        "add",
		Description: "Add two numbers together",
		Params: schema.Schema{
			"a": {Type: schema.Number(), Required: true, Description: "First number"},
			"b": {Type: schema.Number(), Required: true, Description: "Second number"},
		},
		ReadOnly: true,
		Handler: func(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
			var in struct {
				A float64 `mapstructure:"a"`
				B float64 `mapstructure:"b"`
			}
			if err := mapstructure.Decode(args, &in); err != nil {
				return domain.Result{}, err
			}
			return domain.Text(formatNumber(in.A + in.B)), nil
		},
	}
}

// formatNumber renders a float with minimal digits: 5, not 5.000000.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package tui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/gatehouse/internal/presentation/tui"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

func noop(context.Context, map[string]any, domain.Identity) (domain.Result, error) {
	return domain.Text("ok"), nil
}

func TestCatalogMarkdown(t *testing.T) {
	descriptors := []domain.Descriptor{
		{
			Name:        "generateImage",
			Description: "Generate an image from a text prompt",
			Params: schema.Schema{
				"prompt": {Type: schema.String(), Required: true, Description: "Description of the image to generate"},
				"steps":  {Type: schema.NumberBetween(4, 8), Default: 4, Description: "Diffusion step count"},
			},
			Handler: noop,
		},
		{
			Name:        "userInfo",
			Description: "Fetch the calling user's profile",
			Handler:     noop,
		},
	}

	md := tui.CatalogMarkdown(descriptors)

	assert.Contains(t, md, "# Tools (2)")
	assert.Contains(t, md, "## generateImage")
	assert.Contains(t, md, "Generate an image from a text prompt")
	assert.Contains(t, md, "- `prompt` (string, required): Description of the image to generate")
	assert.Contains(t, md, "- `steps` (number, 4 to 8, default 4): Diffusion step count")
	assert.Contains(t, md, "## userInfo")
	assert.Contains(t, md, "No parameters.")
}

func TestCatalogMarkdown_Empty(t *testing.T) {
	md := tui.CatalogMarkdown(nil)
	assert.Contains(t, md, "# Tools (0)")
}

func TestCatalogMarkdown_EnumField(t *testing.T) {
	descriptors := []domain.Descriptor{{
		Name: "export",
		Params: schema.Schema{
			"format": {Type: schema.Enum("json", "csv"), Default: "json"},
		},
		Handler: noop,
	}}

	md := tui.CatalogMarkdown(descriptors)
	assert.Contains(t, md, "- `format` (enum, one of json|csv, default json)")
}

package builtin

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/gatehouse/internal/visibility"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
	"github.com/aretw0/gatehouse/pkg/schema"
)

const (
	imageMinSteps     = 4
	imageMaxSteps     = 8
	imageDefaultSteps = 4
	imageMIMEType     = "image/jpeg"
)

// GenerateImage returns the generateImage tool, visible only to subjects on
// the deployment allow-list. The backend's raw payload comes back as a
// single binary content block.
func GenerateImage(images ports.ImageGenerator, allowlist []string) domain.Descriptor {
	return domain.Descriptor{
		Name:        "generateImage",
		Description: "Generate an image from a text prompt",
		Params: schema.Schema{
			"prompt": {Type: schema.String(), Required: true, Description: "Description of the image to generate"},
			"steps": {
				Type:        schema.NumberBetween(imageMinSteps, imageMaxSteps),
				Default:     imageDefaultSteps,
				Description: "Diffusion step count; more steps, more detail",
			},
		},
		Guard:     visibility.Subjects(allowlist...),
		ReadOnly:  true,
		OpenWorld: true,
		Handler: func(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
			var in struct {
				Prompt string  `mapstructure:"prompt"`
				Steps  float64 `mapstructure:"steps"`
			}
			if err := mapstructure.Decode(args, &in); err != nil {
				return domain.Result{}, err
			}
			payload, err := images.Generate(ctx, in.Prompt, int(in.Steps))
			if err != nil {
				return domain.Result{}, domain.Upstream(err)
			}
			return domain.Binary(payload, imageMIMEType), nil
		},
	}
}

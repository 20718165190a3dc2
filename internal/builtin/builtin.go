// Package builtin declares the gateway's built-in tools: add, userInfo,
// generateImage and get_price.
package builtin

import (
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
)

// Deps carries the upstream service clients the built-in tools call.
type Deps struct {
	Profiles ports.ProfileAPI
	Images   ports.ImageGenerator
	Prices   ports.PriceSource
}

// Config carries deployment-time tool settings.
type Config struct {
	// ImageAllowlist lists the subjects allowed to see and call
	// generateImage. Empty means nobody.
	ImageAllowlist []string
}

// All returns every built-in descriptor, ready for registration.
func All(deps Deps, cfg Config) []domain.Descriptor {
	return []domain.Descriptor{
		Add(),
		UserInfo(deps.Profiles),
		GenerateImage(deps.Images, cfg.ImageAllowlist),
		GetPrice(deps.Prices),
	}
}

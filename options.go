package gatehouse

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
)

// Option defines a functional option for configuring the Gateway.
type Option func(*Gateway)

// WithLogger sets a structured logger for the gateway and everything it
// wires. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// WithMetrics registers the invocation counter and latency histogram on reg.
// Without it the gateway records nothing.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(g *Gateway) { g.registerer = reg }
}

// WithAuthenticator overrides the authenticator derived from the config.
func WithAuthenticator(auth ports.Authenticator) Option {
	return func(g *Gateway) { g.auth = auth }
}

// WithProfileAPI injects a custom profile client, bypassing the HTTP client
// built from the config URL.
func WithProfileAPI(api ports.ProfileAPI) Option {
	return func(g *Gateway) { g.profiles = api }
}

// WithImageGenerator injects a custom image backend client.
func WithImageGenerator(gen ports.ImageGenerator) Option {
	return func(g *Gateway) { g.images = gen }
}

// WithPriceSource injects a custom price source, bypassing the default feed
// client and its Redis cache.
func WithPriceSource(src ports.PriceSource) Option {
	return func(g *Gateway) { g.prices = src }
}

// WithTools registers additional tools alongside the built-ins.
func WithTools(tools ...domain.Descriptor) Option {
	return func(g *Gateway) { g.extra = append(g.extra, tools...) }
}

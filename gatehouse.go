package gatehouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/gatehouse/internal/authn"
	"github.com/aretw0/gatehouse/internal/builtin"
	"github.com/aretw0/gatehouse/internal/config"
	"github.com/aretw0/gatehouse/internal/engine"
	"github.com/aretw0/gatehouse/internal/logging"
	"github.com/aretw0/gatehouse/internal/metrics"
	"github.com/aretw0/gatehouse/internal/registry"
	"github.com/aretw0/gatehouse/pkg/adapters/imagegen"
	"github.com/aretw0/gatehouse/pkg/adapters/pricefeed"
	"github.com/aretw0/gatehouse/pkg/adapters/userapi"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
)

// Config aliases the gateway configuration so library consumers can build
// one without reaching into internal packages.
type Config = config.Config

// DefaultConfig returns the built-in configuration defaults: no
// authentication, the public price feed endpoint, a 10s upstream timeout.
func DefaultConfig() Config { return *config.Default() }

// LoadConfig reads a YAML configuration file, expands ${VAR} references
// from the environment and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// Gateway is the high-level entry point for the gatehouse library.
// It wires the built-in tool catalog, upstream clients, authenticator and
// invocation engine from a single Config and exposes the engine operations.
type Gateway struct {
	engine     *engine.Engine
	auth       ports.Authenticator
	logger     *slog.Logger
	registerer prometheus.Registerer

	profiles ports.ProfileAPI
	images   ports.ImageGenerator
	prices   ports.PriceSource

	extra   []domain.Descriptor
	closers []func() error
}

// New assembles a Gateway from cfg.
//
// Upstream clients are built from the config URLs unless injected via
// options. An empty URL leaves the tool registered but failing with an
// upstream fault, so a partially configured gateway still serves its full
// catalog. When cache.redis_addr is set the price source is wrapped in the
// Redis read-through cache; Close releases that connection.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	g := &Gateway{}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logging.NewNop()
	}

	if g.auth == nil {
		auth, err := buildAuthenticator(cfg.Auth)
		if err != nil {
			return nil, err
		}
		g.auth = auth
	}

	if g.profiles == nil {
		if cfg.Tools.UserAPIURL != "" {
			g.profiles = userapi.New(cfg.Tools.UserAPIURL)
		} else {
			g.profiles = unconfigured{service: "user profile api"}
		}
	}
	if g.images == nil {
		if cfg.Tools.ImageAPIURL != "" {
			g.images = imagegen.New(cfg.Tools.ImageAPIURL)
		} else {
			g.images = unconfigured{service: "image backend"}
		}
	}
	if g.prices == nil {
		g.buildPriceSource(cfg)
	}

	reg := registry.New()
	deps := builtin.Deps{Profiles: g.profiles, Images: g.images, Prices: g.prices}
	all := builtin.All(deps, builtin.Config{ImageAllowlist: cfg.Tools.ImageAllowlist})
	for _, d := range append(all, g.extra...) {
		if err := reg.Register(d); err != nil {
			return nil, fmt.Errorf("registering tool: %w", err)
		}
	}

	engineOpts := []engine.Option{engine.WithLogger(g.logger)}
	if cfg.Tools.Timeout > 0 {
		engineOpts = append(engineOpts, engine.WithTimeout(cfg.Tools.Timeout))
	}
	if g.registerer != nil {
		engineOpts = append(engineOpts, engine.WithMetrics(metrics.NewRecorder(g.registerer)))
	}
	g.engine = engine.New(reg, engineOpts...)

	return g, nil
}

func (g *Gateway) buildPriceSource(cfg Config) {
	if cfg.Tools.PriceAPIURL == "" {
		g.prices = unconfigured{service: "price feed"}
		return
	}

	feed := pricefeed.New(cfg.Tools.PriceAPIURL)
	if cfg.Cache.RedisAddr == "" {
		g.prices = feed
		return
	}

	cacheOpts := []pricefeed.CacheOption{pricefeed.WithCacheLogger(g.logger)}
	if cfg.Cache.PriceTTL > 0 {
		cacheOpts = append(cacheOpts, pricefeed.WithTTL(cfg.Cache.PriceTTL))
	}
	cached := pricefeed.NewCached(feed, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cacheOpts...)
	g.prices = cached
	g.closers = append(g.closers, cached.Close)
}

func buildAuthenticator(cfg config.AuthConfig) (ports.Authenticator, error) {
	switch cfg.Mode {
	case config.ModeStatic:
		tokens := make(map[string]domain.Identity, len(cfg.Tokens))
		for token, id := range cfg.Tokens {
			tokens[token] = domain.Identity{Subject: id.Subject, Name: id.Name, Email: id.Email}
		}
		return authn.NewStatic(tokens), nil
	case config.ModeJWT:
		return authn.NewJWT([]byte(cfg.JWTSecret)), nil
	case config.ModeNone, "":
		// Open gateway: every session is anonymous.
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// Catalog returns every registered tool, visible or not. Transports must
// not serve this to clients; it exists for operator tooling.
func (g *Gateway) Catalog() []domain.Descriptor {
	return g.engine.Catalog()
}

// List returns the tools visible to id.
func (g *Gateway) List(ctx context.Context, id domain.Identity) []domain.Descriptor {
	return g.engine.List(ctx, id)
}

// Invoke runs one tool call through the full gate sequence: existence,
// visibility, validation, dispatch. Every failure is a *domain.Fault.
func (g *Gateway) Invoke(ctx context.Context, id domain.Identity, name string, args map[string]any) (domain.Result, error) {
	return g.engine.Invoke(ctx, id, name, args)
}

// Authenticator returns the configured token verifier, or nil when the
// gateway runs open.
func (g *Gateway) Authenticator() ports.Authenticator {
	return g.auth
}

// Close releases resources held by upstream clients, such as the Redis
// connection behind the price cache.
func (g *Gateway) Close() error {
	var errs []error
	for _, c := range g.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unconfigured stands in for upstream clients with no configured endpoint.
// Calls fail as upstream faults instead of panicking inside a handler.
type unconfigured struct{ service string }

func (u unconfigured) Profile(context.Context, string) (json.RawMessage, error) {
	return nil, u.err()
}

func (u unconfigured) Generate(context.Context, string, int) ([]byte, error) {
	return nil, u.err()
}

func (u unconfigured) Quote(context.Context, string) (string, error) {
	return "", u.err()
}

func (u unconfigured) err() error {
	return fmt.Errorf("%s endpoint is not configured", u.service)
}

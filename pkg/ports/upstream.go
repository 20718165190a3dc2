package ports

import (
	"context"
	"encoding/json"
)

// ProfileAPI fetches the authenticated caller's profile from the identity
// provider, acting with the session's delegated credential. The returned
// message is a JSON object; shape violations are reported as errors, not
// passed through.
type ProfileAPI interface {
	Profile(ctx context.Context, credential string) (json.RawMessage, error)
}

// ImageGenerator renders an image from a textual prompt. steps controls the
// diffusion step count; callers pass a value already validated against the
// tool schema. The returned bytes are the raw image payload.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, steps int) ([]byte, error)
}

// PriceSource quotes the current price of a trading symbol. The symbol is
// the resolved upstream ticker (e.g. BTCUSDT), not the user-supplied alias.
// The quote is returned as decimal text exactly as the feed serves it.
//
// Failed or non-success fetches surface a *domain.UpstreamStatusError where
// an HTTP status is involved. No implementation retries; one call maps to at
// most one upstream fetch (a caching implementation may make none).
type PriceSource interface {
	Quote(ctx context.Context, symbol string) (string, error)
}

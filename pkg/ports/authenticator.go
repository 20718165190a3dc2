package ports

import (
	"context"

	"github.com/aretw0/gatehouse/pkg/domain"
)

// Authenticator establishes the session identity from a bearer token
// presented at the transport boundary. Implementations must be safe for
// concurrent use; one Authenticate call happens per incoming session or
// request, never per tool.
type Authenticator interface {
	// Authenticate verifies the token and returns the caller's identity.
	// The returned identity carries the delegated credential tool handlers
	// use against upstream services.
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Package authn implements the session authenticators behind the gateway's
// transports. An authenticator turns a bearer token into an Identity; the
// transport decides what to do when that fails.
package authn

import (
	"context"
	"errors"

	"github.com/aretw0/gatehouse/pkg/domain"
)

// ErrUnknownToken is returned when a presented token matches no configured
// identity.
var ErrUnknownToken = errors.New("unknown token")

// Static authenticates against a fixed token table, the mode used in
// development and in tests.
type Static struct {
	tokens map[string]domain.Identity
}

// NewStatic creates a static authenticator. Keys are bearer tokens, values
// the identities they authenticate as.
func NewStatic(tokens map[string]domain.Identity) *Static {
	table := make(map[string]domain.Identity, len(tokens))
	for token, id := range tokens {
		table[token] = id
	}
	return &Static{tokens: table}
}

// Authenticate resolves token against the table. The token itself becomes
// the identity's delegated credential.
func (s *Static) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	id, ok := s.tokens[token]
	if !ok {
		return domain.Identity{}, ErrUnknownToken
	}
	id.Credential = token
	return id, nil
}

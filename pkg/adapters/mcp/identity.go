package mcp

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/aretw0/gatehouse/pkg/domain"
)

// TokenEnvVar names the environment variable carrying the session token on
// the stdio transport, which has no request headers.
const TokenEnvVar = "GATEHOUSE_TOKEN"

// httpContext resolves the session identity from the Authorization header.
// It serves both the streamable and the SSE transport.
func (s *Server) httpContext(ctx context.Context, r *http.Request) context.Context {
	return s.withIdentity(ctx, bearerToken(r.Header.Get("Authorization")))
}

// stdioContext resolves the session identity from the environment.
func (s *Server) stdioContext(ctx context.Context) context.Context {
	return s.withIdentity(ctx, os.Getenv(TokenEnvVar))
}

// withIdentity authenticates the token and attaches the resulting identity
// to the context. Sessions presenting no token get the configured default
// identity. A presented token that the authenticator rejects demotes the
// session to anonymous, never to the default, so a bad credential cannot
// earn what the absence of one grants.
func (s *Server) withIdentity(ctx context.Context, token string) context.Context {
	if token == "" || s.auth == nil {
		return domain.WithIdentity(ctx, s.fallback)
	}

	id, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		s.logger.Warn("session authentication failed, continuing as anonymous", "err", err)
		return domain.WithIdentity(ctx, domain.Anonymous)
	}
	return domain.WithIdentity(ctx, id)
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

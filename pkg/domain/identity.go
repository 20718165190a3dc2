package domain

import (
	"context"
	"log/slog"
)

// Identity is the authenticated caller of a session.
//
// It is constructed once by the authentication boundary when the session is
// established and is immutable afterwards: exactly one Identity exists per
// active session, it is never shared across sessions, and it is never
// persisted beyond the session's lifetime.
type Identity struct {
	// Subject is the stable identifier of the caller.
	Subject string `json:"subject" mapstructure:"subject"`

	// Name is the caller's display name.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Email is the contact address associated with the caller.
	Email string `json:"email,omitempty" mapstructure:"email"`

	// Credential is an opaque delegated token that tool handlers may use to
	// act on the caller's behalf against upstream services. It is sensitive:
	// it is excluded from serialization and from log output.
	Credential string `json:"-" mapstructure:"-"`
}

// Anonymous is the identity of an unauthenticated session.
var Anonymous = Identity{}

// IsZero reports whether the identity is the anonymous identity.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// HasCredential reports whether a delegated credential is attached.
func (id Identity) HasCredential() bool {
	return id.Credential != ""
}

// LogValue implements slog.LogValuer. The delegated credential is redacted,
// so an Identity can always be handed to a logger directly.
func (id Identity) LogValue() slog.Value {
	if id.IsZero() {
		return slog.StringValue("anonymous")
	}
	return slog.GroupValue(
		slog.String("subject", id.Subject),
		slog.String("name", id.Name),
	)
}

type identityContextKey struct{}

// WithIdentity returns a context carrying the session identity. The session
// host attaches the identity once per request; everything downstream reads it
// back with IdentityFromContext.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the session identity from the context,
// returning Anonymous when none was attached.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityContextKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}

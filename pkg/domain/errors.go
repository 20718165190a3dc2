package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateTool is returned when a descriptor is registered under a name
// already present in the table.
var ErrDuplicateTool = errors.New("duplicate tool name")

// FaultKind classifies a failed invocation.
type FaultKind string

const (
	// FaultNotFound marks a tool name that is not registered at all.
	FaultNotFound FaultKind = "not_found"

	// FaultUnauthorized marks a tool that exists but is not visible to the
	// calling identity.
	FaultUnauthorized FaultKind = "unauthorized"

	// FaultInvalidParameters marks arguments that failed schema validation.
	FaultInvalidParameters FaultKind = "invalid_parameters"

	// FaultUpstream marks a collaborator call that failed, returned a
	// non-success status, or timed out.
	FaultUpstream FaultKind = "upstream_error"

	// FaultInternal marks an unexpected handler fault. Its cause is logged
	// server-side and never shown to the caller.
	FaultInternal FaultKind = "internal_error"
)

// Fault is the single failure shape of the gateway. Every error leaving the
// invocation engine is a *Fault. Message is safe to return to the caller;
// Detail carries extra diagnostics for logs.
type Fault struct {
	Kind    FaultKind
	Message string
	Detail  string
	err     error
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Kind, f.Message, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (f *Fault) Unwrap() error { return f.err }

// NotFound reports an unknown tool name. Its message is deliberately
// identical to the Unauthorized message so callers cannot enumerate hidden
// tools by probing names; the kinds stay distinct for logs and metrics.
func NotFound(name string) *Fault {
	return &Fault{Kind: FaultNotFound, Message: unavailableMessage(name)}
}

// Unauthorized reports a tool that exists but is hidden from the caller.
func Unauthorized(name string) *Fault {
	return &Fault{Kind: FaultUnauthorized, Message: unavailableMessage(name)}
}

func unavailableMessage(name string) string {
	return fmt.Sprintf("tool %q is not available", name)
}

// InvalidParams reports a schema validation failure. The validation error
// text names the offending field and reason, and stays caller-visible.
func InvalidParams(err error) *Fault {
	return &Fault{Kind: FaultInvalidParameters, Message: fmt.Sprintf("invalid parameters: %v", err), err: err}
}

// Upstream reports a failed collaborator call. The cause's text, including
// upstream status and body where available, stays caller-visible.
func Upstream(err error) *Fault {
	return &Fault{Kind: FaultUpstream, Message: fmt.Sprintf("upstream error: %v", err), err: err}
}

// Internal reports an unexpected handler fault. The cause is retained for
// logging only; the caller sees a generic message.
func Internal(err error) *Fault {
	return &Fault{Kind: FaultInternal, Message: "internal error", err: err}
}

// AsFault extracts a *Fault from the error chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf classifies an arbitrary error. Faults report their own kind,
// upstream status errors classify as FaultUpstream, anything else as
// FaultInternal.
func KindOf(err error) FaultKind {
	if f, ok := AsFault(err); ok {
		return f.Kind
	}
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		return FaultUpstream
	}
	return FaultInternal
}

// UpstreamStatusError reports a non-success HTTP status from a collaborator.
// The raw response body is retained for diagnostics and failure detail.
type UpstreamStatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

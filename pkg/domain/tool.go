package domain

import (
	"context"

	"github.com/aretw0/gatehouse/pkg/schema"
)

// Handler executes one tool invocation. By the time a handler runs, args has
// been validated and normalized against the descriptor's schema: required
// fields are present, kinds match, numeric bounds hold and defaults are
// applied. Errors returned here are normalized into Faults at the engine
// boundary, so a handler may return a *Fault, an *UpstreamStatusError, or
// any other error.
type Handler func(ctx context.Context, args map[string]any, id Identity) (Result, error)

// Guard is a visibility predicate over the session identity. A nil Guard
// means the tool is visible to every identity.
type Guard func(id Identity) bool

// Descriptor declares one callable tool: its unique name, a human-readable
// description, the structural schema of its parameters, an optional
// visibility guard, and the handler performing the work.
//
// Descriptors are registered exactly once at process start and never mutated
// afterwards. Only their visibility is dynamic, evaluated fresh per request
// against the session identity.
type Descriptor struct {
	// Name uniquely identifies the tool within the table.
	Name string

	// Description is shown to clients listing the tool.
	Description string

	// Params declares the tool's parameters. A nil schema means the tool
	// takes no parameters.
	Params schema.Schema

	// Guard restricts visibility. Nil means public.
	Guard Guard

	// Handler performs the invocation.
	Handler Handler

	// ReadOnly hints that the handler does not modify its environment.
	ReadOnly bool

	// OpenWorld hints that the handler interacts with external systems.
	OpenWorld bool
}

// Visible reports whether the descriptor is visible to the given identity
// under its own guard. The engine consults the injected policy rather than
// calling this directly; it exists for policy implementations.
func (d Descriptor) Visible(id Identity) bool {
	return d.Guard == nil || d.Guard(id)
}

// Package visibility implements the policy deciding which tools a session
// identity may see and call. The policy value is injected into the engine at
// construction time, so deployments and tests can swap rules without any
// global state.
package visibility

import "github.com/aretw0/gatehouse/pkg/domain"

// Policy decides whether a descriptor is visible to an identity. It is
// evaluated fresh on every list request and again on every call; results are
// never cached across requests. Implementations must be pure and safe for
// concurrent use.
type Policy interface {
	Visible(id domain.Identity, d domain.Descriptor) bool
}

// GuardPolicy is the default policy: a descriptor is visible unless it
// declares a guard, in which case the guard decides.
type GuardPolicy struct{}

func (GuardPolicy) Visible(id domain.Identity, d domain.Descriptor) bool {
	return d.Visible(id)
}

// Filter returns the subset of descriptors visible to the identity,
// preserving input order.
func Filter(p Policy, id domain.Identity, descriptors []domain.Descriptor) []domain.Descriptor {
	visible := make([]domain.Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if p.Visible(id, d) {
			visible = append(visible, d)
		}
	}
	return visible
}

// Anyone returns the nil guard: the descriptor is visible to every identity,
// anonymous sessions included.
func Anyone() domain.Guard { return nil }

// Subjects builds a guard admitting exactly the given subject identifiers,
// checked by string equality. An empty set admits nobody; empty identifiers
// are ignored so an anonymous session can never slip through.
func Subjects(ids ...string) domain.Guard {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		allowed[id] = struct{}{}
	}
	return func(id domain.Identity) bool {
		_, ok := allowed[id.Subject]
		return ok
	}
}

// Package engine implements the invocation engine: visibility-checked
// lookup, schema validation, handler dispatch and failure normalization.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/gatehouse/internal/logging"
	"github.com/aretw0/gatehouse/internal/metrics"
	"github.com/aretw0/gatehouse/internal/registry"
	"github.com/aretw0/gatehouse/internal/visibility"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// DefaultTimeout bounds a single handler dispatch, external calls included.
const DefaultTimeout = 10 * time.Second

// Engine validates, authorizes and dispatches tool invocations. All of its
// state is read-only after New, so one engine serves every session
// concurrently.
type Engine struct {
	reg      *registry.Registry
	policy   visibility.Policy
	logger   *slog.Logger
	recorder *metrics.Recorder
	timeout  time.Duration
}

// Option configures the engine.
type Option func(*Engine)

// WithPolicy injects the visibility policy. Defaults to
// visibility.GuardPolicy.
func WithPolicy(p visibility.Policy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithLogger injects a logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout overrides the per-invocation deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// New creates an engine over a populated registry.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:     reg,
		policy:  visibility.GuardPolicy{},
		logger:  logging.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns every registered descriptor regardless of visibility.
// Transports use it to install protocol handlers once at startup; what a
// session actually sees is decided per request by List and Invoke.
func (e *Engine) Catalog() []domain.Descriptor {
	return e.reg.All()
}

// List returns the descriptors visible to the identity, sorted by name.
// The policy runs fresh on every call; nothing is cached across requests.
func (e *Engine) List(ctx context.Context, id domain.Identity) []domain.Descriptor {
	return visibility.Filter(e.policy, id, e.reg.All())
}

// Invoke runs one tool call for the identity. The returned error, when
// non-nil, is always a *domain.Fault; no other error shape leaves the
// engine.
func (e *Engine) Invoke(ctx context.Context, id domain.Identity, name string, raw map[string]any) (domain.Result, error) {
	started := time.Now()
	log := e.logger.With(
		slog.String("invocation_id", uuid.NewString()),
		slog.String("tool", name),
		slog.Any("identity", id),
	)

	result, fault := e.invoke(ctx, id, name, raw)
	elapsed := time.Since(started)

	if fault != nil {
		e.recorder.Observe(name, string(fault.Kind), elapsed)
		if fault.Kind == domain.FaultInternal {
			// The caller gets a generic message; the cause stays here.
			log.Error("invocation failed", "kind", fault.Kind, "error", fault.Unwrap(), "elapsed", elapsed)
		} else {
			log.Warn("invocation failed", "kind", fault.Kind, "error", fault, "elapsed", elapsed)
		}
		return domain.Result{}, fault
	}

	e.recorder.Observe(name, "success", elapsed)
	log.Info("invocation completed", "elapsed", elapsed)
	return result, nil
}

func (e *Engine) invoke(ctx context.Context, id domain.Identity, name string, raw map[string]any) (domain.Result, *domain.Fault) {
	d, ok := e.reg.Get(name)
	if !ok {
		return domain.Result{}, domain.NotFound(name)
	}

	// Authorization is re-checked at call time, not only at list time, so a
	// client cannot call a tool it was never shown.
	if !e.policy.Visible(id, d) {
		return domain.Result{}, domain.Unauthorized(name)
	}

	// Validation happens strictly before dispatch; an invalid call never
	// reaches the handler.
	args, err := schema.Apply(d.Params, raw)
	if err != nil {
		return domain.Result{}, domain.InvalidParams(err)
	}

	result, err := e.dispatch(ctx, d, args, id)
	if err != nil {
		return domain.Result{}, classify(err)
	}
	return result, nil
}

// dispatch runs the handler under the invocation deadline and converts
// panics into errors.
func (e *Engine) dispatch(ctx context.Context, d domain.Descriptor, args map[string]any, id domain.Identity) (result domain.Result, err error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = domain.Result{}
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return d.Handler(ctx, args, id)
}

// classify normalizes a handler error into a fault: faults pass through,
// upstream status errors and expired or canceled contexts become upstream
// faults, anything else is internal.
func classify(err error) *domain.Fault {
	if f, ok := domain.AsFault(err); ok {
		return f
	}
	var statusErr *domain.UpstreamStatusError
	if errors.As(err, &statusErr) {
		return domain.Upstream(err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Upstream(err)
	}
	return domain.Internal(err)
}

package builtin_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/internal/builtin"
	"github.com/aretw0/gatehouse/internal/engine"
	"github.com/aretw0/gatehouse/internal/registry"
	"github.com/aretw0/gatehouse/pkg/domain"
)

var (
	listed   = domain.Identity{Subject: "usr_1001", Name: "Ada", Credential: "tok-1001"}
	unlisted = domain.Identity{Subject: "usr_2002", Name: "Grace", Credential: "tok-2002"}
)

// fakeImages counts calls so tests can prove validation gates dispatch.
type fakeImages struct {
	calls      int
	lastPrompt string
	lastSteps  int
	payload    []byte
	err        error
}

func (f *fakeImages) Generate(ctx context.Context, prompt string, steps int) ([]byte, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastSteps = steps
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fakePrices struct {
	quotes map[string]string
	err    error
	seen   []string
}

func (f *fakePrices) Quote(ctx context.Context, symbol string) (string, error) {
	f.seen = append(f.seen, symbol)
	if f.err != nil {
		return "", f.err
	}
	quote, ok := f.quotes[symbol]
	if !ok {
		return "", &domain.UpstreamStatusError{Service: "price feed", StatusCode: 400, Body: "Invalid symbol."}
	}
	return quote, nil
}

type fakeProfiles struct {
	profile       json.RawMessage
	err           error
	gotCredential string
}

func (f *fakeProfiles) Profile(ctx context.Context, credential string) (json.RawMessage, error) {
	f.gotCredential = credential
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// newEngine wires the built-in descriptors into a fresh engine the way the
// facade does at startup.
func newEngine(t *testing.T, deps builtin.Deps, cfg builtin.Config) *engine.Engine {
	t.Helper()

	reg := registry.New()
	reg.MustRegister(builtin.All(deps, cfg)...)
	return engine.New(reg)
}

func requireText(t *testing.T, result domain.Result) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(domain.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func requireKind(t *testing.T, err error, kind domain.FaultKind) *domain.Fault {
	t.Helper()

	fault, ok := domain.AsFault(err)
	require.True(t, ok, "expected *domain.Fault, got %T", err)
	require.Equal(t, kind, fault.Kind)
	return fault
}

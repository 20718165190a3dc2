package builtin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/internal/builtin"
	"github.com/aretw0/gatehouse/pkg/domain"
)

func TestResolveSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"bitcoin", "BTCUSDT"},
		{"BITCOIN", "BTCUSDT"},
		{"btc", "BTCUSDT"},
		{"BTC", "BTCUSDT"},
		{"Btc", "BTCUSDT"},
		{"ethereum", "ETHUSDT"},
		{"eth", "ETHUSDT"},
		{"dogecoin", "DOGECOIN"},
		{"solusdt", "SOLUSDT"},
	}

	for _, tc := range cases {
		if got := builtin.ResolveSymbol(tc.in); got != tc.want {
			t.Errorf("ResolveSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetPrice_AliasesProduceIdenticalText(t *testing.T) {
	prices := &fakePrices{quotes: map[string]string{"BTCUSDT": "43250.01000000"}}
	eng := newEngine(t, builtin.Deps{Prices: prices}, builtin.Config{})

	want := "The current price of BTCUSDT is 43250.01000000"
	for _, alias := range []string{"bitcoin", "BTC", "btc"} {
		result, err := eng.Invoke(context.Background(), listed, "get_price", map[string]any{"symbol": alias})
		require.NoError(t, err, "alias %q", alias)
		assert.Equal(t, want, requireText(t, result), "alias %q", alias)
	}
	assert.Equal(t, []string{"BTCUSDT", "BTCUSDT", "BTCUSDT"}, prices.seen)
}

func TestGetPrice_UnaliasedSymbolUppercased(t *testing.T) {
	prices := &fakePrices{quotes: map[string]string{"DOGECOIN": "0.42"}}
	eng := newEngine(t, builtin.Deps{Prices: prices}, builtin.Config{})

	result, err := eng.Invoke(context.Background(), listed, "get_price", map[string]any{"symbol": "dogecoin"})
	require.NoError(t, err)
	assert.Equal(t, "The current price of DOGECOIN is 0.42", requireText(t, result))
}

func TestGetPrice_UpstreamFailureCarriesStatusAndBody(t *testing.T) {
	prices := &fakePrices{err: &domain.UpstreamStatusError{Service: "price feed", StatusCode: 500, Body: "server error"}}
	eng := newEngine(t, builtin.Deps{Prices: prices}, builtin.Config{})

	result, err := eng.Invoke(context.Background(), listed, "get_price", map[string]any{"symbol": "bitcoin"})
	fault := requireKind(t, err, domain.FaultUpstream)
	assert.Contains(t, fault.Message, "500")
	assert.Contains(t, fault.Message, "server error")
	assert.Empty(t, result.Content, "a failed fetch must never produce a success")
}

func TestGetPrice_RequiresSymbol(t *testing.T) {
	eng := newEngine(t, builtin.Deps{Prices: &fakePrices{}}, builtin.Config{})

	_, err := eng.Invoke(context.Background(), listed, "get_price", nil)
	fault := requireKind(t, err, domain.FaultInvalidParameters)
	assert.Contains(t, fault.Message, "symbol")
}

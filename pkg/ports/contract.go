package ports

import (
	"context"
	"testing"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPriceSourceContract runs a suite of tests verifying that a PriceSource
// implementation adheres to the interface contract. The caller supplies a
// source wired so that known resolves to a quote and unknown fails with an
// upstream error.
func RunPriceSourceContract(t *testing.T, source PriceSource, known, unknown string) {
	ctx := context.Background()

	t.Run("Quote known symbol", func(t *testing.T) {
		price, err := source.Quote(ctx, known)
		require.NoError(t, err, "Quote should not return error for a known symbol")
		assert.NotEmpty(t, price, "Quote should return decimal text")
	})

	t.Run("Quote is stable", func(t *testing.T) {
		first, err := source.Quote(ctx, known)
		require.NoError(t, err)
		second, err := source.Quote(ctx, known)
		require.NoError(t, err)
		assert.Equal(t, first, second, "repeated quotes for one symbol must agree")
	})

	t.Run("Quote unknown symbol", func(t *testing.T) {
		_, err := source.Quote(ctx, unknown)
		require.Error(t, err, "Quote should fail for an unknown symbol")
		assert.Equal(t, domain.FaultUpstream, domain.KindOf(err), "failure should classify as upstream")
	})
}

package builtin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/internal/builtin"
	"github.com/aretw0/gatehouse/internal/engine"
	"github.com/aretw0/gatehouse/pkg/domain"
)

func imageSetup(t *testing.T) (*fakeImages, *engine.Engine) {
	t.Helper()

	images := &fakeImages{payload: []byte{0xFF, 0xD8, 0xFF, 0xE0}}
	eng := newEngine(t, builtin.Deps{Images: images}, builtin.Config{ImageAllowlist: []string{"usr_1001"}})
	return images, eng
}

func listedNames(eng *engine.Engine, id domain.Identity) []string {
	var names []string
	for _, d := range eng.List(context.Background(), id) {
		names = append(names, d.Name)
	}
	return names
}

func TestGenerateImage_Success(t *testing.T) {
	images, eng := imageSetup(t)

	result, err := eng.Invoke(context.Background(), listed, "generateImage",
		map[string]any{"prompt": "a lighthouse at dusk", "steps": 6})
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	block, ok := result.Content[0].(domain.BinaryContent)
	require.True(t, ok, "expected binary content, got %T", result.Content[0])
	assert.Equal(t, "image/jpeg", block.MIMEType)
	assert.Equal(t, images.payload, block.Data)
	assert.Equal(t, "a lighthouse at dusk", images.lastPrompt)
	assert.Equal(t, 6, images.lastSteps)
}

func TestGenerateImage_OutOfBoundsStepsNeverDispatch(t *testing.T) {
	images, eng := imageSetup(t)

	_, err := eng.Invoke(context.Background(), listed, "generateImage",
		map[string]any{"prompt": "a lighthouse", "steps": 10})
	requireKind(t, err, domain.FaultInvalidParameters)
	assert.Equal(t, 0, images.calls, "the backend must not be called for invalid parameters")
}

func TestGenerateImage_DefaultStepsApplied(t *testing.T) {
	images, eng := imageSetup(t)

	_, err := eng.Invoke(context.Background(), listed, "generateImage",
		map[string]any{"prompt": "a lighthouse"})
	require.NoError(t, err)
	assert.Equal(t, 4, images.lastSteps, "missing steps must dispatch with the default")
}

func TestGenerateImage_HiddenFromUnlistedIdentities(t *testing.T) {
	_, eng := imageSetup(t)

	assert.NotContains(t, listedNames(eng, unlisted), "generateImage")
	assert.NotContains(t, listedNames(eng, domain.Anonymous), "generateImage")
	assert.Contains(t, listedNames(eng, listed), "generateImage")
}

func TestGenerateImage_UnlistedCallUnauthorized(t *testing.T) {
	// Listing never showed the tool, but the caller tries anyway.
	images, eng := imageSetup(t)

	_, err := eng.Invoke(context.Background(), unlisted, "generateImage",
		map[string]any{"prompt": "a lighthouse"})
	requireKind(t, err, domain.FaultUnauthorized)
	assert.Equal(t, 0, images.calls)
}

func TestGenerateImage_EmptyAllowlistHidesFromEveryone(t *testing.T) {
	images := &fakeImages{payload: []byte{0x1}}
	eng := newEngine(t, builtin.Deps{Images: images}, builtin.Config{})

	for _, id := range []domain.Identity{listed, unlisted, domain.Anonymous} {
		_, err := eng.Invoke(context.Background(), id, "generateImage", map[string]any{"prompt": "x"})
		requireKind(t, err, domain.FaultUnauthorized)
	}
	assert.Equal(t, 0, images.calls)
}

func TestGenerateImage_BackendFailureIsUpstream(t *testing.T) {
	images := &fakeImages{err: &domain.UpstreamStatusError{Service: "image backend", StatusCode: 503, Body: "overloaded"}}
	eng := newEngine(t, builtin.Deps{Images: images}, builtin.Config{ImageAllowlist: []string{"usr_1001"}})

	_, err := eng.Invoke(context.Background(), listed, "generateImage", map[string]any{"prompt": "x"})
	fault := requireKind(t, err, domain.FaultUpstream)
	assert.Contains(t, fault.Message, "503")
}

package builtin_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/internal/builtin"
	"github.com/aretw0/gatehouse/pkg/domain"
)

func TestUserInfo_ReturnsProfileJSON(t *testing.T) {
	profiles := &fakeProfiles{profile: json.RawMessage(`{"sub":"usr_1001","name":"Ada","email":"ada@example.com"}`)}
	eng := newEngine(t, builtin.Deps{Profiles: profiles}, builtin.Config{})

	result, err := eng.Invoke(context.Background(), listed, "userInfo", nil)
	require.NoError(t, err)

	text := requireText(t, result)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded), "userInfo output must be JSON text")
	assert.Equal(t, "usr_1001", decoded["sub"])
	assert.Equal(t, "tok-1001", profiles.gotCredential, "the session credential is forwarded upstream")
}

func TestUserInfo_NoCredential(t *testing.T) {
	profiles := &fakeProfiles{profile: json.RawMessage(`{}`)}
	eng := newEngine(t, builtin.Deps{Profiles: profiles}, builtin.Config{})

	_, err := eng.Invoke(context.Background(), domain.Identity{Subject: "usr_3003"}, "userInfo", nil)
	requireKind(t, err, domain.FaultUnauthorized)
	assert.Empty(t, profiles.gotCredential, "the profile API must not be called without a credential")
}

func TestUserInfo_UpstreamFailure(t *testing.T) {
	profiles := &fakeProfiles{err: &domain.UpstreamStatusError{Service: "user api", StatusCode: 401, Body: "token expired"}}
	eng := newEngine(t, builtin.Deps{Profiles: profiles}, builtin.Config{})

	_, err := eng.Invoke(context.Background(), listed, "userInfo", nil)
	fault := requireKind(t, err, domain.FaultUpstream)
	assert.Contains(t, fault.Message, "401")
}

func TestUserInfo_IgnoresStrayArguments(t *testing.T) {
	profiles := &fakeProfiles{profile: json.RawMessage(`{"sub":"usr_1001"}`)}
	eng := newEngine(t, builtin.Deps{Profiles: profiles}, builtin.Config{})

	_, err := eng.Invoke(context.Background(), listed, "userInfo", map[string]any{"unexpected": true})
	require.NoError(t, err, "a no-parameter tool ignores stray arguments")
}

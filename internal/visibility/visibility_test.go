package visibility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/gatehouse/pkg/domain"
)

func noop(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
	return domain.Text("ok"), nil
}

func TestGuardPolicy(t *testing.T) {
	public := domain.Descriptor{Name: "add", Handler: noop, Guard: Anyone()}
	gated := domain.Descriptor{Name: "generateImage", Handler: noop, Guard: Subjects("usr_1001")}

	policy := GuardPolicy{}
	allowed := domain.Identity{Subject: "usr_1001"}
	other := domain.Identity{Subject: "usr_2002"}

	assert.True(t, policy.Visible(allowed, public))
	assert.True(t, policy.Visible(other, public))
	assert.True(t, policy.Visible(domain.Anonymous, public))

	assert.True(t, policy.Visible(allowed, gated))
	assert.False(t, policy.Visible(other, gated))
	assert.False(t, policy.Visible(domain.Anonymous, gated))
}

func TestFilterPreservesOrder(t *testing.T) {
	descriptors := []domain.Descriptor{
		{Name: "add", Handler: noop},
		{Name: "generateImage", Handler: noop, Guard: Subjects("usr_1001")},
		{Name: "get_price", Handler: noop},
	}

	visible := Filter(GuardPolicy{}, domain.Identity{Subject: "usr_2002"}, descriptors)

	names := make([]string, len(visible))
	for i, d := range visible {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"add", "get_price"}, names)
}

func TestSubjectsEmptySetAdmitsNobody(t *testing.T) {
	guard := Subjects()

	assert.False(t, guard(domain.Identity{Subject: "usr_1001"}))
	assert.False(t, guard(domain.Anonymous))
}

func TestSubjectsIgnoresEmptyIdentifier(t *testing.T) {
	guard := Subjects("", "usr_1001")

	assert.True(t, guard(domain.Identity{Subject: "usr_1001"}))
	assert.False(t, guard(domain.Anonymous), "anonymous subject must never match")
}

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

func noop(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
	return domain.Text("ok"), nil
}

func TestRegisterAndGet(t *testing.T) {
	r := New()

	err := r.Register(domain.Descriptor{Name: "add", Handler: noop})
	require.NoError(t, err)

	d, ok := r.Get("add")
	require.True(t, ok)
	assert.Equal(t, "add", d.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegisterDuplicate(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(domain.Descriptor{Name: "add", Handler: noop}))

	err := r.Register(domain.Descriptor{Name: "add", Handler: noop})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTool)
}

func TestRegisterRejectsMalformed(t *testing.T) {
	r := New()

	assert.Error(t, r.Register(domain.Descriptor{Name: "", Handler: noop}), "empty name")
	assert.Error(t, r.Register(domain.Descriptor{Name: "broken"}), "nil handler")

	err := r.Register(domain.Descriptor{
		Name:    "kindless",
		Handler: noop,
		Params:  schema.Schema{"x": {}},
	})
	assert.Error(t, err, "field without kind")

	err = r.Register(domain.Descriptor{
		Name:    "badDefault",
		Handler: noop,
		Params:  schema.Schema{"steps": {Type: schema.NumberBetween(4, 8), Default: 10}},
	})
	assert.Error(t, err, "default outside its own bounds")
}

func TestAllSortedByName(t *testing.T) {
	r := New()
	r.MustRegister(
		domain.Descriptor{Name: "userInfo", Handler: noop},
		domain.Descriptor{Name: "add", Handler: noop},
		domain.Descriptor{Name: "get_price", Handler: noop},
	)

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "add", all[0].Name)
	assert.Equal(t, "get_price", all[1].Name)
	assert.Equal(t, "userInfo", all[2].Name)
	assert.Equal(t, 3, r.Len())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := New()
	r.MustRegister(domain.Descriptor{Name: "add", Handler: noop})

	assert.Panics(t, func() {
		r.MustRegister(domain.Descriptor{Name: "add", Handler: noop})
	})
}

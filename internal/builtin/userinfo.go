package builtin

import (
	"context"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
)

// UserInfo returns the userInfo tool: the caller's profile as JSON text,
// fetched from the identity provider with the session's delegated
// credential. It takes no parameters.
func UserInfo(profiles ports.ProfileAPI) domain.Descriptor {
	return domain.Descriptor{
		Name:        "userInfo",
		Description: "Get the authenticated user's profile",
		ReadOnly:    true,
		OpenWorld:   true,
		Handler: func(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
			if !id.HasCredential() {
				return domain.Result{}, &domain.Fault{
					Kind:    domain.FaultUnauthorized,
					Message: "no delegated credential attached to this session",
				}
			}
			profile, err := profiles.Profile(ctx, id.Credential)
			if err != nil {
				return domain.Result{}, domain.Upstream(err)
			}
			return domain.Text(string(profile)), nil
		},
	}
}

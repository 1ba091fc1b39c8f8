package api

import (
	"context"

	"portfolio-backend/auth"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal attaches the authenticated principal to the request context
func ctxWithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ctxPrincipal returns the authenticated principal, or auth.Anonymous when
// the request carried no valid token
func ctxPrincipal(ctx context.Context) auth.Principal {
	if p, ok := ctx.Value(principalKey).(auth.Principal); ok {
		return p
	}
	return auth.Anonymous
}

package api

import (
	"context"

	"github.com/igreja-site/cms-backend/services"
)

type keyType string

const adminClaimsKey keyType = "adminClaims"

// ctxWithAdmin adds the authenticated admin to the context
func ctxWithAdmin(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// ctxGetAdmin retrieves the authenticated admin from the context
func ctxGetAdmin(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*services.Claims)
	return claims, ok && claims != nil
}

// Package tenant carries the caller's tenant id through a request context.
package tenant

import "context"

type ctxKey struct{}

// WithID returns ctx scoped to tenantID. An empty id leaves the context unscoped.
func WithID(ctx context.Context, tenantID string) context.Context {
	if tenantID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tenantID)
}

// FromContext returns the tenant id, or "" when the request is unscoped.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

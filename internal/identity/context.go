package identity

import "context"

type callerContextKey struct{}

// ContextWithCaller stores the caller identity in context.
func ContextWithCaller(ctx context.Context, caller *Identity) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext extracts the caller identity from context. It returns
// nil for unauthenticated requests.
func CallerFromContext(ctx context.Context) *Identity {
	caller, _ := ctx.Value(callerContextKey{}).(*Identity)
	return caller
}

package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxEmail  contextKey = "email"
)

// WithUserID stores the authenticated user's id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserIDFromContext returns the authenticated user's id, or "" when the
// request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(ctxUserID).(string); ok {
		return val
	}
	return ""
}

// WithEmail stores the authenticated user's email on the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxEmail, email)
}

// EmailFromContext returns the authenticated user's email, or "".
func EmailFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(ctxEmail).(string); ok {
		return val
	}
	return ""
}

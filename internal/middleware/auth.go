package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// PassKey is the context key for storing a validated access pass.
	PassKey contextKey = "access_pass"
	// PassGroupKey is the context key for storing the group the pass opens.
	PassGroupKey contextKey = "pass_group_id"
)

// GetPass extracts the access pass from the context.
// Returns empty string if not found.
func GetPass(ctx context.Context) string {
	pass, _ := ctx.Value(PassKey).(string)
	return pass
}

// GetPassGroupID extracts the group opened by the access pass from the context.
// Returns empty string if not found.
func GetPassGroupID(ctx context.Context) string {
	groupID, _ := ctx.Value(PassGroupKey).(string)
	return groupID
}

// bearer returns the token of an "Authorization: Bearer <token>" header.
func bearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// OptionalPass returns a middleware that picks up a private-group access pass
// from the Authorization header. Requests without a pass, or with an invalid
// one, go through unchanged; the group detail then asks for the secret.
func OptionalPass(passes *auth.PassManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, ok := bearer(req.Header().Get("Authorization")); ok {
				// Validate pass (ignore errors - optional)
				if claims, err := passes.Validate(token); err == nil {
					ctx = context.WithValue(ctx, PassKey, token)
					ctx = context.WithValue(ctx, PassGroupKey, claims.GroupID)
				}
			}

			return next(ctx, req)
		}
	}
}

package firebase

import (
	"context"

	"shopeasy/pkg/errors"
)

type userIDKey struct{}

// WithUserID stores the verified user id on the context. The auth
// middleware calls this after token verification.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey{}, uid)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey{}).(string)
	return uid, ok && uid != ""
}

// RequestIdentity resolves the acting user from the request context.
// It satisfies repository.IdentitySource.
type RequestIdentity struct {
	auth *AuthClient
}

func NewRequestIdentity(auth *AuthClient) *RequestIdentity {
	return &RequestIdentity{
		auth: auth,
	}
}

func (r *RequestIdentity) CurrentUserID(ctx context.Context) (string, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return "", errors.Unauthorized("No authenticated user", nil)
	}
	return uid, nil
}

func (r *RequestIdentity) SignOut(ctx context.Context) error {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return errors.Unauthorized("No authenticated user", nil)
	}
	return r.auth.RevokeSessions(ctx, uid)
}

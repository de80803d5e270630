package repository

import (
	"context"
)

// IdentitySource exposes the authenticated user for the current call.
// The gateway consults it before every document operation; this layer
// never creates or validates credentials itself.
type IdentitySource interface {
	// CurrentUserID returns the acting user's id, or Unauthorized when
	// no user is signed in.
	CurrentUserID(ctx context.Context) (string, error)

	SignOut(ctx context.Context) error
}

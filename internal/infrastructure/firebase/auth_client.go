package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// AuthClient wraps the Firebase Auth SDK. Credential exchange and
// session persistence happen on the client side; the server only
// verifies tokens and revokes sessions.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

// VerifyToken validates an ID token and returns the user id it was
// issued for.
func (a *AuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return token.UID, nil
}

// RevokeSessions invalidates all refresh tokens issued to the user.
func (a *AuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return a.client.RevokeRefreshTokens(ctx, uid)
}

package handler

import (
	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	identity repository.IdentitySource
}

func NewAuthHandler(identity repository.IdentitySource) *AuthHandler {
	return &AuthHandler{
		identity: identity,
	}
}

// SignOut revokes the caller's sessions. Credential exchange and token
// issuance stay on the auth provider; this is the only auth operation
// the service owns.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.identity.SignOut(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Signed out",
	})
}

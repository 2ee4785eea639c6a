package api

import (
	"errors"
	"strings"

	"github.com/listenupapp/colorhash/internal/auth"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// requireScope validates the Authorization header and checks the token
// carries scope. Missing or bad tokens are 401, a missing scope is 403.
func (s *Server) requireScope(authHeader, scope string) (*auth.AdminClaims, error) {
	if s.services.Tokens == nil {
		return nil, domainerrors.Forbidden("Admin tokens are not configured")
	}
	if authHeader == "" {
		return nil, domainerrors.Unauthorized("Missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil, domainerrors.Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Tokens.VerifyAdminToken(token, scope)
	switch {
	case errors.Is(err, auth.ErrMissingScope):
		return nil, domainerrors.Forbidden("Token lacks the " + scope + " scope")
	case err != nil:
		return nil, domainerrors.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is attached to fiber locals by the middleware.
type AuthContext struct {
	Subject string
	Email   string
	Role    Role
}

// GetAuthContext retrieves the auth context set by TokenMiddleware.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

// TokenMiddleware authenticates requests with a bearer token.
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate validates the Authorization header and stores the auth
// context. Any failure yields the same generic 401.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return ErrInvalidToken()
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return ErrInvalidToken()
		}

		c.Locals(authContextKey, &AuthContext{
			Subject: claims.Subject,
			Email:   claims.Email,
			Role:    claims.Role,
		})
		return c.Next()
	}
}

// RequireRole restricts a route to tokens of one role.
func (m *TokenMiddleware) RequireRole(role Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok || authCtx.Role != role {
			return ErrInvalidToken()
		}
		return c.Next()
	}
}

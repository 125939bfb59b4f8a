package middleware

import (
	"strings"

	"quizquest/internal/domain"
	"quizquest/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	IdentityKey         = "identity" // Key for storing domain.Identity in fiber.Ctx locals
)

// identityClaims are the JWT claims we read off a bearer token.
type identityClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// OptionalIdentity resolves the caller's identity from a bearer token when one
// is present. Missing or invalid tokens fall through to anonymous access; this
// middleware never rejects a request.
func OptionalIdentity(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			logger.Get().Debug("Authorization scheme is not Bearer, proceeding as anonymous")
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Next()
		}

		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domain.NewError(domain.CodeUnauthorized, "unexpected signing method", nil)
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			logger.Get().Debug("Bearer token rejected, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}

		c.Locals(IdentityKey, domain.Identity{
			UID:         claims.Subject,
			Email:       claims.Email,
			DisplayName: claims.DisplayName,
		})
		return c.Next()
	}
}

// IdentityFromCtx returns the authenticated identity stored by
// OptionalIdentity, or the zero (anonymous) identity.
func IdentityFromCtx(c *fiber.Ctx) domain.Identity {
	if id, ok := c.Locals(IdentityKey).(domain.Identity); ok {
		return id
	}
	return domain.Identity{}
}

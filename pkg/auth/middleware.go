package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/circulation/pkg/errcodes"
)

type contextKey string

const (
	ContextKeyClaims contextKey = "claims"

	bearerPrefix = "bearer "
)

// Middleware guards routes with bearer token authentication.
type Middleware struct {
	authService *Service
}

func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate requires a valid bearer token in the Authorization header. A
// missing token is rejected with auth_missing, anything that fails
// verification with auth_invalid. On success the claims are stored on both
// the echo context and the request context.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return errcodes.AuthMissing()
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			logger.FromContext(c.Request().Context()).Warn("token rejected", logger.Data{"reason": err.Error()})
			return errcodes.AuthInvalid()
		}

		c.Set(string(ContextKeyClaims), claims)
		ctx := context.WithValue(c.Request().Context(), ContextKeyClaims, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ClaimsFromContext retrieves the authenticated claims from a request context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*Claims)
	return claims
}

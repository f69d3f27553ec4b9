package middleware

import (
	"net/http"
	"strings"

	"loan-application-backend/pkg/token"

	"github.com/labstack/echo/v4"
)

const (
	ctxSubject = "auth.subject"
	ctxRole    = "auth.role"
)

type errorBody struct {
	Error string `json:"error"`
}

// Authenticate requires a bearer token signed by tokens and carrying role.
func Authenticate(tokens *token.Issuer, role token.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
			}
			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: token.ErrInvalidToken.Error()})
			}
			if claims.Role != role {
				return c.JSON(http.StatusForbidden, errorBody{Error: "insufficient role"})
			}
			c.Set(ctxSubject, claims.Subject)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// Subject is the authenticated token subject, "" when unauthenticated.
func Subject(c echo.Context) string {
	s, _ := c.Get(ctxSubject).(string)
	return s
}

// WithSubject marks c as authenticated; used by handler tests.
func WithSubject(c echo.Context, subject string) {
	c.Set(ctxSubject, subject)
}

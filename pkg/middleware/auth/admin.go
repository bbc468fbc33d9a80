package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopledger/pkg/tokens"
)

type AdminMiddleware struct {
	JWTSecret []byte
}

func NewAdminMiddleware(secret []byte) *AdminMiddleware {
	return &AdminMiddleware{JWTSecret: secret}
}

func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != tokens.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AdminMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator func(claims *tokens.AccessClaims) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// accessToken takes the bearer header first and falls back to the
// accessToken cookie.
func accessToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if v, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(v)
		}
	}
	if ck, err := c.Cookie("accessToken"); err == nil {
		return ck.Value
	}
	return ""
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
}

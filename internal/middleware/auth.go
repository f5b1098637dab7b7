package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/repo"
	"github.com/skirsanov/gadgetshop/internal/tokens"
)

type Auth struct {
	JWTSecret []byte
	Repo      *repo.GormRepo
}

func NewAuth(secret []byte, r *repo.GormRepo) *Auth {
	return &Auth{JWTSecret: secret, Repo: r}
}

// RequireAuth validates the bearer access token and stores the subject id in
// the request context.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == header {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// RequireRole resolves the user by id and checks the stored role, so a stale
// role claim inside an old token cannot grant access.
func (m *Auth) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, _ := c.Get("user_id").(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			user, err := m.Repo.FindUserByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
	}
}

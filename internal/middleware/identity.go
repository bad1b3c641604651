package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/trainermarkt/backend/internal/models"
)

const actorKey = "actor"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireIdentity authenticates the bearer token and stores the caller as
// an explicit Actor on the request context. Handlers pass the Actor down
// into services; nothing below the handler layer touches the token.
func RequireIdentity(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role := models.Role(claims.Role)
			if role != models.RoleTrainer && role != models.RoleCompany {
				return echo.NewHTTPError(http.StatusForbidden, "unknown role")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(actorKey, models.Actor{UserID: claims.Subject, Role: role})
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) models.Actor {
	actor, _ := c.Get(actorKey).(models.Actor)
	return actor
}

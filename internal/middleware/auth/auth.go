package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// RequireAuth gates mutating endpoints behind a bearer token. The three
// failure modes get distinct messages so the admin console can tell a stale
// session from a broken one.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: "HS256",
		TokenLookup:   "header:Authorization:Bearer ",
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok {
					c.Set("user_id", sub)
				}
				if email, ok := claims["email"].(string); ok {
					c.Set("email", email)
				}
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			case errors.Is(err, jwt.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
		},
	})
}

package middleware

import (
	"net/http"

	jwtlib "photostudio/internal/lib/jwt"
	"photostudio/internal/transport/http/dto/response"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// ContextKey holds the decoded token claims.
const ContextKey = "user"

// AdminAuth accepts only bearer tokens signed with the admin secret.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return bearer(func(token string) (interface{}, error) {
		return jwtlib.ParseAdminToken(token, secret)
	})
}

// ClientAuth accepts only bearer tokens signed with the client secret.
func ClientAuth(secret string) echo.MiddlewareFunc {
	return bearer(func(token string) (interface{}, error) {
		return jwtlib.ParseClientToken(token, secret)
	})
}

func bearer(parse func(token string) (interface{}, error)) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return parse(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, response.CodeUnauthorized).SetInternal(err)
		},
	})
}

// RequireRole rejects admin tokens whose role claim differs from role.
// It must run after AdminAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := AdminFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, response.CodeUnauthorized)
			}
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, response.CodeForbidden)
			}
			return next(c)
		}
	}
}

func AdminFromContext(c echo.Context) (*jwtlib.AdminClaims, bool) {
	claims, ok := c.Get(ContextKey).(*jwtlib.AdminClaims)
	return claims, ok && claims != nil
}

func ClientFromContext(c echo.Context) (*jwtlib.ClientClaims, bool) {
	claims, ok := c.Get(ContextKey).(*jwtlib.ClientClaims)
	return claims, ok && claims != nil
}

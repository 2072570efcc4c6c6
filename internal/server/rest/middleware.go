package rest

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/auth"
)

// jwtMiddleware verifies the bearer token and stashes the decoded claims on
// the request context. A missing, malformed or expired token is a uniform 401.
func (s *Server) jwtMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return auth.ParseToken(tokenString, []byte(s.config.SecretKey))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid token"})
		},
	})
}

// claimsFrom extracts the verified claims the JWT middleware stored.
func claimsFrom(c echo.Context) *auth.Claims {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// requireAdmin rejects authenticated requests whose token does not carry the
// admin role. The role is read from the claims on every request; a stale
// customer token stays a customer token until re-issued.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := claimsFrom(c)
		if claims == nil {
			return s.writeError(c, common.ErrInvalidToken, "")
		}
		if !claims.IsAdmin() {
			return s.writeError(c, common.ErrForbidden, "")
		}
		return next(c)
	}
}

package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Operator levels allowed on the admin surface.
const (
	LevelSuper = "super"
	LevelAdmin = "admin"
)

// Claims extracts the parsed JWT claims set by the echo-jwt middleware.
func Claims(c echo.Context) jwt.MapClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// UserID returns the authenticated principal's subject, or "" when the
// request carries no usable identity.
func UserID(c echo.Context) string {
	claims := Claims(c)
	if claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// requireOperator gates the admin group on the operator level claim.
func requireOperator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := Claims(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "operator token required")
		}
		level, _ := claims["level"].(string)
		if level != LevelSuper && level != LevelAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "operator level required")
		}
		return next(c)
	}
}

// IssueOperatorToken signs a JWT for a logged-in operator.
func IssueOperatorToken(secret, username, level string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   username,
		"level": level,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

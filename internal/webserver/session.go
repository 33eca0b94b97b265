package webserver

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/restokit/restopos/internal/domain"
)

// SessionClaims is the JWT payload carried by every authenticated request.
// Identity is resolved here once; domain services receive the user id as an
// explicit parameter and never consult ambient session state.
type SessionClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JwtMiddleware validates bearer tokens on the /api group.
func JwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		SigningKey: []byte(secret),
	})
}

// GenerateToken signs a session token for the given user.
func GenerateToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CurrentClaims returns the session claims for the request, or nil when
// the request is unauthenticated.
func CurrentClaims(c echo.Context) *SessionClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := token.Claims.(*SessionClaims)
	return claims
}

// CurrentUserID returns the authenticated user id, or 0.
func CurrentUserID(c echo.Context) int64 {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// CurrentRole returns the authenticated user role, or "".
func CurrentRole(c echo.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}

// AdminOnly rejects requests whose session role is not admin.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentRole(c) != domain.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// Package auth issues and verifies the bearer tokens that gate the API.
// Tokens are HS256 JWTs carrying the user id, email and an enumerated role;
// the role is re-read from the claims on every request, never cached
// client-side.
package auth

import (
	"errors"
	"time"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Role is the enumerated privilege level embedded in token claims.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// RoleFor maps the persisted admin flag to a token role.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// Claims is the token payload: registered claims plus the identity fields
// attached to the request context after verification.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// GenerateToken signs a token for the given identity, valid for
// validityDuration from now. Changing any claim (notably the role) requires
// re-issuing; outstanding tokens keep the old claims until they expire.
func GenerateToken(userID int64, email string, role Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the decoded claims.
// Expired tokens map to common.ErrTokenExpired, everything else that fails
// verification to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Package auth implements the credential primitives of the service:
// bcrypt password hashing and HS256 bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dkovalev/accountd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a signed HS256 token asserting a successful login.
// Claims carry the issuer, the audience, the issue time and an absolute
// expiry of issuedAt+validity. Nothing is persisted server-side; the token is
// valid for any holder of the same secret until it expires.
func GenerateToken(secretKey []byte, issuer, audience string, issuedAt time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks the signature, signing method, issuer, audience and
// expiry of a token string. Expired tokens yield common.ErrTokenExpired; any
// other failure yields common.ErrInvalidToken.
func ValidateToken(tokenString string, secretKey []byte, issuer, audience string) error {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	return nil
}

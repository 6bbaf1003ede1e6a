package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims binds a session token to exactly one user. The token is
// treated as opaque by clients; the server additionally checks it against the
// token currently stored on the user row, so a later login revokes it even
// before the signature expires.
type SessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new signed session token for a user.
func GenerateToken(userID uuid.UUID, email string, secret []byte, expiration time.Duration) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC()),
			ID:        uuid.NewString(),
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateToken checks the signature of a session token and returns its claims.
func ValidateToken(tokenString string, secret []byte) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := parsed.Claims.(*SessionClaims); ok && parsed.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

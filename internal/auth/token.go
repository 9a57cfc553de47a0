package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the session token lifetime: 7 days from issuance.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by Verify for every kind of verification
// failure. Callers cannot distinguish a bad signature from a malformed
// or expired token.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity claim set embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenService issues and verifies HS256-signed session tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a session token carrying the given identity, expiring
// TokenTTL from now.
func (s *TokenService) Issue(id int64, username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
		},
		ID:       id,
		Username: username,
		Role:     role,
	})

	return token.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Any failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

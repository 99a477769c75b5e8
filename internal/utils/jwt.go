package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims carried by access tokens: subject id plus the account type. The
// type is a snapshot; permission checks always re-read the user row.
type Claims struct {
	UserID string          `json:"user_id"`
	Type   models.UserType `json:"type"`
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func refreshSecret() []byte {
	if s := os.Getenv("REFRESH_SECRET"); s != "" {
		return []byte(s)
	}
	return accessSecret()
}

// GenerateAccessToken issues a short-lived HS256 token for the user.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Type:   user.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(accessSecret())
}

// GenerateRefreshToken issues the long-lived token; callers persist it so
// refresh can be revoked server-side.
func GenerateRefreshToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(refreshSecret())
}

// ParseAccessToken parses and validates an access token
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parse(tokenString, accessSecret())
}

// ParseRefreshToken parses and validates a refresh token
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parse(tokenString, refreshSecret())
}

func parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

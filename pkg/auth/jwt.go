package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/5-in-a-row/backend/internal/config"
)

const issuer = "five-in-a-row-engine"

// Claims identifies an API client allowed to query the engine.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a client token with the configured secret and TTL.
func GenerateAccessToken(clientID string) (string, error) {
	return GenerateToken(clientID, config.AppConfig.JWTSecret, config.AppConfig.AccessTokenTTL)
}

// ValidateAccessToken checks a token against the configured secret.
func ValidateAccessToken(tokenString string) (*Claims, error) {
	return ValidateToken(tokenString, config.AppConfig.JWTSecret)
}

func GenerateToken(clientID, secret string, ttl time.Duration) (string, error) {
	if clientID == "" {
		return "", errors.New("client id is required")
	}

	now := time.Now()
	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ClientID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeReset   = "reset"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	ResetTokenTTL   = 15 * time.Minute
)

func signToken(subject, tokenType string, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"exp":  time.Now().Add(ttl).Unix(),
		"type": tokenType,
	})
	return token.SignedString([]byte(secret))
}

// GenerateAccessToken mints a short-lived access token for a user ID.
func GenerateAccessToken(userID string) (string, error) {
	return signToken(userID, TokenTypeAccess, AccessTokenTTL)
}

// GenerateRefreshToken mints a long-lived refresh token for a user ID.
func GenerateRefreshToken(userID string) (string, error) {
	return signToken(userID, TokenTypeRefresh, RefreshTokenTTL)
}

// GeneratePasswordResetToken mints a reset token bound to an email.
func GeneratePasswordResetToken(email string) (string, error) {
	return signToken(email, TokenTypeReset, ResetTokenTTL)
}

// VerifyToken validates signature, expiry and token type, returning the
// subject claim.
func VerifyToken(tokenString, tokenType string) (string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if claims["type"] != tokenType {
		return "", errors.New("wrong token type")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("subject claim missing")
	}
	return sub, nil
}

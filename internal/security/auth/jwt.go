package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	ClientID int64  `json:"client_id"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret string
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{secret: secret, issuer: "deposit-ledger", ttl: ttl}
}

func (tm *TokenManager) GenerateToken(clientID int64, fullName string) (string, error) {
	if clientID <= 0 {
		return "", fmt.Errorf("client id required")
	}
	now := time.Now()
	claims := Claims{
		ClientID: clientID,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(clientID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secret))
}

func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ClientID <= 0 {
		return nil, fmt.Errorf("token missing client id")
	}

	return claims, nil
}

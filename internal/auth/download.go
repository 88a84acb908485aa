package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DownloadClaims scopes a short-lived link token to one document.
// Verification is stateless and idempotent; the token can be checked
// any number of times until it expires.
type DownloadClaims struct {
	DocumentID uuid.UUID `json:"document_id"`
	jwt.RegisteredClaims
}

// GenerateDownloadToken signs a link token for the document. The secret
// is separate from the identity secret so a leaked link never doubles
// as a session.
func GenerateDownloadToken(documentID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := DownloadClaims{
		DocumentID: documentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "docuvault",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign download token: %w", err)
	}
	return signed, nil
}

// ParseDownloadToken verifies a link token and returns the document it
// grants access to.
func ParseDownloadToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DownloadClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return uuid.Nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse download token: %w", err)
	}

	claims, ok := token.Claims.(*DownloadClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid download token claims")
	}
	return claims.DocumentID, nil
}

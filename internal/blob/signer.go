package blob

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/resume-processor/internal/config"
)

// Claims are the signed download-token claims: which blob the token grants
// access to, plus the standard expiry fields.
type Claims struct {
	BlobName string `json:"blob_name"`
	jwt.RegisteredClaims
}

// Signer issues and validates expiring download tokens for blob names. It is
// the stand-in for pre-signed storage URLs: the blob endpoint is public but
// only serves names carried in a valid token.
type Signer struct {
	config *config.JWTConfig
}

// NewSigner creates a signer with the given JWT configuration.
func NewSigner(cfg *config.JWTConfig) *Signer {
	return &Signer{config: cfg}
}

// Sign issues a token granting download access to one blob name.
func (s *Signer) Sign(blobName string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		BlobName: blobName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a download token and returns the blob name it grants.
func (s *Signer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}

	return claims.BlobName, nil
}

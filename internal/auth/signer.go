package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/Muizzyranking/drf-auth/pkg/errors"
)

// purposeEmailVerification marks tokens minted for the confirm-email flow, so
// a token signed for one purpose can never be replayed for another.
const purposeEmailVerification = "email_verification"

// verificationClaims are the claims embedded in a verification token: the
// subject, the issue timestamp, and a purpose marker. There is no exp claim;
// the verifier decides expiry against a max age so the same token format
// works for any configured lifetime.
type verificationClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// VerificationSigner mints and verifies the stateless signed tokens used for
// email confirmation. It holds no state beyond the secret; validity is purely
// a function of the signature and wall-clock time.
type VerificationSigner struct {
	secret []byte
}

// NewVerificationSigner creates a signer around the dedicated verification secret.
func NewVerificationSigner(secret string) *VerificationSigner {
	return &VerificationSigner{secret: []byte(secret)}
}

// Sign produces a signed token binding the user id to the current timestamp.
func (s *VerificationSigner) Sign(userID string) (string, error) {
	now := time.Now().UTC()
	claims := &verificationClaims{
		Purpose: purposeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the token's signature and age and returns the embedded user id.
// A malformed, tampered, wrong-algorithm, or wrong-purpose token fails with
// TokenInvalid. A well-signed token whose issue time is older than maxAge
// fails with TokenExpired; an outdated token must never surface as invalid.
func (s *VerificationSigner) Verify(tokenString string, maxAge time.Duration) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &verificationClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", apperrors.TokenInvalid()
	}

	claims, ok := token.Claims.(*verificationClaims)
	if !ok || !token.Valid {
		return "", apperrors.TokenInvalid()
	}

	if claims.Purpose != purposeEmailVerification || claims.Subject == "" || claims.IssuedAt == nil {
		return "", apperrors.TokenInvalid()
	}

	if time.Since(claims.IssuedAt.Time) > maxAge {
		return "", apperrors.TokenExpired()
	}

	return claims.Subject, nil
}

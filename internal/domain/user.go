package domain

import (
	"strings"
	"time"
)

// User represents a registered account. Users are created inactive and become
// active exactly once, when their email address is confirmed.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenPair holds a signed access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain part
// of the address. The local part keeps its case: mail servers may treat it
// case-sensitively, the domain never is.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

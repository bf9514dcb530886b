package authenticator

import (
	"context"
	"fmt"
)

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}

// String returns the claim as a string, "" when absent
func (c Claims) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Subject returns the stable user identifier
func (c Claims) Subject() string {
	return c.String("sub")
}

// Email returns the email claim
func (c Claims) Email() string {
	return c.String("email")
}

// DisplayName prefers nickname, then name, then email
func (c Claims) DisplayName() string {
	for _, key := range []string{"nickname", "name", "email"} {
		if v := c.String(key); v != "" {
			return v
		}
	}
	return c.Subject()
}

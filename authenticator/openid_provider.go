package authenticator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/blogem/regdesk/config"
)

// reviewerScopes asks for the profile and email claims. The email becomes
// the reviewer's identity in audit entries and outgoing messages.
var reviewerScopes = []string{oidc.ScopeOpenID, "profile", "email"}

// OpenIDProvider signs reviewers in against an OpenID Connect issuer
type OpenIDProvider struct {
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOpenIDProvider discovers the issuer at cfg.Domain and creates a provider
func NewOpenIDProvider(ctx context.Context, cfg config.AuthConfig) (Provider, error) {
	if err := validateAuthConfig(cfg); err != nil {
		return nil, err
	}

	issuer, err := oidc.NewProvider(ctx, issuerURL(cfg.Domain))
	if err != nil {
		return nil, fmt.Errorf("failed to discover issuer %s: %w", issuerURL(cfg.Domain), err)
	}

	return &OpenIDProvider{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     issuer.Endpoint(),
			Scopes:       reviewerScopes,
		},
		verifier: issuer.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// validateAuthConfig names every missing OIDC_* setting in one error
func validateAuthConfig(cfg config.AuthConfig) error {
	var missing []string
	for _, s := range []struct{ env, value string }{
		{"OIDC_DOMAIN", cfg.Domain},
		{"OIDC_CLIENT_ID", cfg.ClientID},
		{"OIDC_CLIENT_SECRET", cfg.ClientSecret},
		{"OIDC_CALLBACK_URL", cfg.CallbackURL},
	} {
		if strings.TrimSpace(s.value) == "" {
			missing = append(missing, s.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("identity provider not configured, missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// issuerURL accepts a bare domain or a full issuer URL
func issuerURL(domain string) string {
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return strings.TrimSuffix(domain, "/") + "/"
	}
	return "https://" + strings.TrimSuffix(domain, "/") + "/"
}

// GetAuthURL returns the issuer login URL carrying state
func (p *OpenIDProvider) GetAuthURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// ExchangeCode trades the callback code for tokens
func (p *OpenIDProvider) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	oauth2Token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry.Unix(),
	}
	if idToken, ok := oauth2Token.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}
	return token, nil
}

// GetClaims verifies the ID token and returns its claims. A token without a
// subject cannot identify a reviewer and is refused.
func (p *OpenIDProvider) GetClaims(ctx context.Context, token *Token) (Claims, error) {
	if token.IDToken == "" {
		return nil, errors.New("no id_token in token")
	}

	idToken, err := p.verifier.Verify(ctx, token.IDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id_token: %w", err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode id_token claims: %w", err)
	}
	if claims.Subject() == "" {
		return nil, errors.New("id_token has no subject")
	}
	return claims, nil
}

package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/authenticator"
	"github.com/blogem/regdesk/middleware"
)

// AuthController handles sign-in through the identity provider
type AuthController struct {
	provider authenticator.Provider
	logger   *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(provider authenticator.Provider, logger *zap.Logger) *AuthController {
	return &AuthController{provider: provider, logger: logger}
}

// Login handles GET /login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set("state", state)

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from the identity provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	storedState, _ := sess.Get("state").(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		ac.logger.Warn("code exchange failed", zap.Error(err))
		http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		ac.logger.Warn("id token verification failed", zap.Error(err))
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if claims.Subject() == "" {
		http.Error(w, "ID token has no subject", http.StatusUnauthorized)
		return
	}

	sess.Set(middleware.SessionUserID, claims.Subject())
	sess.Set(middleware.SessionNickname, claims.DisplayName())
	sess.Set(middleware.SessionEmail, claims.Email())
	sess.Delete("state")

	ac.logger.Info("reviewer signed in", zap.String("user_id", claims.Subject()))

	target := "/"
	if dest, ok := sess.Get(middleware.SessionRedirectAfter).(string); ok && strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//") {
		target = dest
	}
	sess.Delete(middleware.SessionRedirectAfter)

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout handles GET /logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		ac.logger.Warn("failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

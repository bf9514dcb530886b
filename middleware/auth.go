package middleware

import (
	"fmt"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/regdesk/userctx"
)

// Session keys written at login
const (
	SessionUserID        = "user_id"
	SessionNickname      = "user_nickname"
	SessionEmail         = "user_email"
	SessionRedirectAfter = "redirect_after_login"
)

// RequireAuth ensures the user is authenticated.
// If not authenticated, redirects to /login and stores the intended destination.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID := sess.Get(SessionUserID)

		if userID == nil {
			if r.Method == http.MethodGet {
				sess.Set(SessionRedirectAfter, r.URL.RequestURI())
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := userctx.WithSession(r.Context(), SessionFromStore(sess))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromStore builds the reviewer session from the cookie session values
func SessionFromStore(sess session.Store) userctx.Session {
	return userctx.Session{
		UserID:      stringValue(sess.Get(SessionUserID)),
		DisplayName: stringValue(sess.Get(SessionNickname)),
		Email:       stringValue(sess.Get(SessionEmail)),
	}
}

// IsAuthenticated reports whether the request carries a signed-in session
func IsAuthenticated(r *http.Request) bool {
	return session.GetSession(r).Get(SessionUserID) != nil
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}

package userctx

import "context"

// Context key type
type contextKey string

const (
	sessionKey contextKey = "session"
	metaKey    contextKey = "request_meta"
)

// Session is the authenticated reviewer behind a request
type Session struct {
	UserID      string
	DisplayName string
	Email       string
}

// RequestMeta carries client details recorded alongside audit entries
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// WithSession adds the session to the request context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession retrieves the session from the request context
func GetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// GetUserID retrieves the user ID from the request context
func GetUserID(ctx context.Context) string {
	if s, ok := GetSession(ctx); ok {
		return s.UserID
	}
	return ""
}

// GetDisplayName returns the reviewer's display name, "System" when there is no session
func GetDisplayName(ctx context.Context) string {
	if s, ok := GetSession(ctx); ok && s.DisplayName != "" {
		return s.DisplayName
	}
	return "System"
}

// WithRequestMeta adds request metadata to the context
func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey, m)
}

// GetRequestMeta retrieves request metadata from the context
func GetRequestMeta(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(metaKey).(RequestMeta)
	return m
}

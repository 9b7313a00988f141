package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"treedash/pkg/response"
)

type ctxKey struct{}

type Session struct {
	Header  string
	Subject string
	// ActionKey names one user action; a client retry of the action sends
	// the same key.
	ActionKey string
}

// WithSession stores the caller's session on ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Header is the Authorization value to forward upstream, if any.
func Header(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.Header
}

// Subject keys per-admin state (preferences, guards, session markers).
func Subject(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok || s.Subject == "" {
		return "anonymous"
	}
	return s.Subject
}

// ActionKey is the idempotency key of the action behind ctx, if any.
func ActionKey(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.ActionKey
}

// SubjectFromHeader reads the subject of a bearer token. The upstream API is
// the one that verifies the token; here the claims only name the admin. An
// opaque session token is hashed into a stable name instead.
func SubjectFromHeader(header string) string {
	fields := strings.Fields(header)
	if len(fields) > 0 && strings.EqualFold(fields[0], "Bearer") {
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return ""
	}
	token := fields[0]

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if email, ok := claims["email"].(string); ok && email != "" {
			return email
		}
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			return sub
		}
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(token)).String()
}

// Middleware requires an Authorization header and puts the session on the
// request context.
func Middleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			subject := SubjectFromHeader(header)
			if subject == "" {
				log.Warn("request without a bearer token", slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "authorization required"))
				return
			}

			key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			if key == "" {
				key = uuid.NewString()
			}

			ctx := WithSession(r.Context(), Session{
				Header:    header,
				Subject:   subject,
				ActionKey: key,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

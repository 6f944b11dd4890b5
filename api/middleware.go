package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
)

// SessionTTL is how long an issued bearer token stays valid
const SessionTTL = 30 * 24 * time.Hour

type ctxKey int

const sessionKey ctxKey = iota

// Session is the authenticated caller of a request
type Session struct {
	UserID string
	Email  string
}

// WithSession stores the session on a context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored by the guard middleware
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// Guard issues and checks bearer tokens through go-guardian
type Guard struct {
	authenticator auth.Authenticator
	cache         store.Cache
}

// NewGuard sets up the go-guardian bearer strategy with an in-memory token cache
func NewGuard(ttl time.Duration) *Guard {
	g := &Guard{
		authenticator: auth.New(),
		cache:         store.NewFIFO(context.Background(), ttl),
	}
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, g.cache)
	g.authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
	return g
}

// Middleware rejects requests without a valid bearer token
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := g.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Infow("unauthorized",
				"url", r.URL.Path,
				"error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugw("user authenticated", "userId", user.ID())
		s := Session{UserID: user.ID(), Email: user.UserName()}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// Issue creates a bearer token for the session
func (g *Guard) Issue(r *http.Request, s Session) (string, error) {
	token := uuid.New().String()
	authUser := auth.NewDefaultUser(s.Email, s.UserID, nil, nil)
	tokenStrategy := g.authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Append(tokenStrategy, token, authUser, r); err != nil {
		return "", err
	}
	return token, nil
}

// Revoke invalidates the bearer token the request carries
func (g *Guard) Revoke(r *http.Request) error {
	token, err := bearerToken(r)
	if err != nil {
		return err
	}
	tokenStrategy := g.authenticator.Strategy(bearer.CachedStrategyKey)
	return auth.Revoke(tokenStrategy, token, r)
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" || token == h {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

type ctxKey int

const memberKey ctxKey = iota

// MessageResponse is returned by endpoints that have nothing else to report
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// statusFor maps registry errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, registry.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrInvalidTransition),
		errors.Is(err, registry.ErrConversationClosed),
		errors.Is(err, registry.ErrConcurrentModification):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func registryError(message string, w http.ResponseWriter, err error) {
	config.ErrorStatus(message, statusFor(err), w, err)
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func session(w http.ResponseWriter, r *http.Request) (api.Session, bool) {
	s, ok := api.SessionFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no session on request", http.StatusUnauthorized, w, errors.New("unauthorized"))
	}
	return s, ok
}

// member returns the onboarded user loaded by requireMember
func member(ctx context.Context) models.User {
	u, _ := ctx.Value(memberKey).(models.User)
	return u
}

// requireMember lets through only users that have completed onboarding
func requireMember(reg *registry.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session(w, r)
			if !ok {
				return
			}
			ctx, cancel := api.WithQueryTimeout(r.Context())
			u, err := reg.User(ctx, s.UserID)
			cancel()
			if err != nil && !errors.Is(err, registry.ErrNotFound) {
				config.ErrorStatus("failed to load user", http.StatusInternalServerError, w, err)
				return
			}
			if err != nil || !u.Onboarded {
				zap.S().Debugw("blocked user without onboarding", "userId", s.UserID)
				config.ErrorStatus("onboarding required", http.StatusForbidden, w, registry.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), memberKey, u)))
		})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

// User exported for testing purposes
type User struct {
	Reg    *registry.Registry
	Guard  *api.Guard
	Secret []byte
}

// SessionRequest carries the identity assertion from the sign in gateway
type SessionRequest struct {
	Assertion string `json:"assertion"`
}

// SessionResponse is returned after a successful sign in
type SessionResponse struct {
	Token     string      `json:"token"`
	Onboarded bool        `json:"onboarded"`
	User      models.User `json:"user"`
}

// ThemeRequest selects the display theme
type ThemeRequest struct {
	Theme models.Theme `json:"theme"`
}

// CreateSessionHandler exchanges an identity assertion for a bearer token
func (u User) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := decodeBody(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	id, err := api.VerifyAssertion(req.Assertion, u.Secret)
	if err != nil {
		config.ErrorStatus("failed to verify identity", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.Reg.SignIn(ctx, id)
	if err != nil {
		registryError("failed to sign in", w, err)
		return
	}
	token, err := u.Guard.Issue(r, api.Session{UserID: user.ID, Email: user.Email})
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("user signed in", "userId", user.ID, "onboarded", user.Onboarded)
	writeJSON(w, http.StatusOK, SessionResponse{Token: token, Onboarded: user.Onboarded, User: user})
}

// RevokeSessionHandler signs the caller out
func (u User) RevokeSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := u.Guard.Revoke(r); err != nil {
		config.ErrorStatus("failed to revoke token", http.StatusBadRequest, w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "signed out"})
}

// OnboardHandler saves the first profile of a signed in user
func (u User) OnboardHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var p registry.Profile
	if err := decodeBody(r, &p); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id := registry.Identity{Email: s.Email, Name: p.Name, Picture: p.ProfilePicture}
	user, err := u.Reg.CompleteOnboarding(ctx, id, p)
	if err != nil {
		registryError("failed to complete onboarding", w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// MeHandler returns the caller's stored profile
func (u User) MeHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.Reg.User(ctx, s.UserID)
	if errors.Is(err, registry.ErrNotFound) {
		// signed in but not onboarded yet
		user, err = u.Reg.SignIn(ctx, registry.Identity{Email: s.Email})
	}
	if err != nil {
		registryError("failed to get user", w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler edits the caller's profile
func (u User) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var p registry.Profile
	if err := decodeBody(r, &p); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.Reg.UpdateProfile(ctx, s.UserID, p)
	if err != nil {
		registryError("failed to update profile", w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateThemeHandler stores the caller's display theme
func (u User) UpdateThemeHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req ThemeRequest
	if err := decodeBody(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.Reg.UpdateTheme(ctx, s.UserID, req.Theme)
	if err != nil {
		registryError("failed to update theme", w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

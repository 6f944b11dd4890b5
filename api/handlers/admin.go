package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/registry"
)

// Admin exported for testing purposes
type Admin struct {
	Reg *registry.Registry
}

// UsersHandler lists every registered user
func (a Admin) UsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := a.Reg.Users(ctx, member(r.Context()).ID)
	if err != nil {
		registryError("failed to list users", w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// RemoveUserHandler deletes a user account
func (a Admin) RemoveUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	actor := member(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.Reg.RemoveUser(ctx, userID, actor.ID); err != nil {
		registryError("failed to remove user", w, err)
		return
	}
	zap.S().Infow("user removed by administrator", "userId", userID, "actorId", actor.ID)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "user removed"})
}

// FlaggedHandler lists reported items, most reported first
func (a Admin) FlaggedHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	items, err := a.Reg.FlaggedItems(ctx, member(r.Context()).ID)
	if err != nil {
		registryError("failed to list flagged items", w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

// Item exported for testing purposes
type Item struct {
	Reg *registry.Registry
}

// ClaimRequest carries the proof a claimant submits
type ClaimRequest struct {
	ProofText   string   `json:"proofText"`
	ProofImages []string `json:"proofImages"`
}

// withoutPrivateChat blanks the conversation for users who may not read it
func (i Item) withoutPrivateChat(item models.Item, u models.User) models.Item {
	if registry.CanOpenChat(item, u, i.Reg.Gate()) {
		return item
	}
	item.Messages = []models.ChatMessage{}
	return item
}

// FeedHandler lists the public feed, filtered by type, category and search text
func (i Item) FeedHandler(w http.ResponseWriter, r *http.Request) {
	u := member(r.Context())
	q := r.URL.Query()
	filter := registry.FeedFilter{
		Type:     models.ItemType(strings.ToUpper(strings.TrimSpace(q.Get("type")))),
		Category: strings.TrimSpace(q.Get("category")),
		Search:   q.Get("q"),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		config.ErrorStatus("invalid item type", http.StatusBadRequest, w, registry.ErrValidation)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	items, err := i.Reg.Feed(ctx, u.ID, filter)
	if err != nil {
		registryError("failed to list feed", w, err)
		return
	}
	for idx := range items {
		items[idx] = i.withoutPrivateChat(items[idx], u)
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateItemHandler files a new lost or found report
func (i Item) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	u := member(r.Context())
	var draft registry.ItemDraft
	if err := decodeBody(r, &draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	draft.Type = models.ItemType(strings.ToUpper(string(draft.Type)))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := i.Reg.CreateItem(ctx, u.ID, draft)
	if err != nil {
		registryError("failed to create item", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ItemByIDHandler returns a single item
func (i Item) ItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]
	zap.S().Debugf("item_id: %v", itemID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := i.Reg.Item(ctx, itemID)
	if err != nil {
		registryError("failed to get item by ID", w, err)
		return
	}
	writeJSON(w, http.StatusOK, i.withoutPrivateChat(item, member(r.Context())))
}

// DeleteItemHandler removes an item. Reporter or administrator only.
func (i Item) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := i.Reg.RemoveItem(ctx, itemID, member(r.Context()).ID); err != nil {
		registryError("failed to delete item", w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "item deleted"})
}

// FileClaimHandler submits the caller's claim on a NEW item
func (i Item) FileClaimHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]
	var req ClaimRequest
	if err := decodeBody(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := i.Reg.FileClaim(ctx, itemID, member(r.Context()).ID, req.ProofText, req.ProofImages)
	if err != nil {
		registryError("failed to file claim", w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ApproveClaimHandler accepts the pending claim
func (i Item) ApproveClaimHandler(w http.ResponseWriter, r *http.Request) {
	i.reporterAction(w, r, i.Reg.ApproveClaim, "failed to approve claim")
}

// DenyClaimHandler rejects the pending claim and puts the item back in the feed
func (i Item) DenyClaimHandler(w http.ResponseWriter, r *http.Request) {
	i.reporterAction(w, r, i.Reg.DenyClaim, "failed to deny claim")
}

// ResolveItemHandler closes the case
func (i Item) ResolveItemHandler(w http.ResponseWriter, r *http.Request) {
	i.reporterAction(w, r, i.Reg.ResolveItem, "failed to resolve item")
}

type itemAction func(ctx context.Context, itemID, actorID string) (models.Item, error)

func (i Item) reporterAction(w http.ResponseWriter, r *http.Request, action itemAction, failure string) {
	itemID := mux.Vars(r)["item_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := action(ctx, itemID, member(r.Context()).ID)
	if err != nil {
		registryError(failure, w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ReportItemHandler flags an item for moderation
func (i Item) ReportItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]
	u := member(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := i.Reg.ReportItem(ctx, itemID, u.ID)
	if err != nil {
		registryError("failed to report item", w, err)
		return
	}
	writeJSON(w, http.StatusOK, i.withoutPrivateChat(item, u))
}
